package controller

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pollify/backend/internal/dto"
	"github.com/pollify/backend/internal/service"
	"github.com/sirupsen/logrus"
)

type RealtimeController interface {
	Stream(c echo.Context) error
}

type realtimeController struct {
	pollBroker service.PollBroker
	upgrader   websocket.Upgrader
}

func newRealtimeController(pollBroker service.PollBroker) RealtimeController {
	return &realtimeController{
		pollBroker: pollBroker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Poll pages are shared by link and QR code, so any origin may view.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Stream carries the realtime channel for one viewer connection. The client
// sends join_poll/leave_poll frames; the server acknowledges joins and pushes
// vote_update frames for every poll the connection has joined.
func (r *realtimeController) Stream(c echo.Context) error {
	conn, err := r.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	connID := uuid.NewString()
	subscriber := r.pollBroker.Connect(connID)
	defer r.pollBroker.Disconnect(connID)

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	// Unblock the read loop when the write side gives up.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	// All writes go through the write goroutine; gorilla connections allow
	// only one concurrent writer.
	acks := make(chan dto.SocketMessage, 4)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for {
			var message dto.SocketMessage
			if err := conn.ReadJSON(&message); err != nil {
				cancel()
				return
			}

			switch message.Event {
			case dto.SocketEventJoinPoll:
				r.pollBroker.Subscribe(connID, message.PollID)
				// The ack must not be lost while the connection is alive, so
				// block until the write loop takes it or the connection dies.
				select {
				case acks <- dto.SocketMessage{Event: dto.SocketEventJoined, PollID: message.PollID}:
				case <-ctx.Done():
					return
				}
			case dto.SocketEventLeavePoll:
				r.pollBroker.Unsubscribe(connID, message.PollID)
			default:
				logrus.Debugf("Ignoring unknown realtime event %q from %s", message.Event, connID)
			}
		}
	}()

	go func() {
		defer wg.Done()
		for {
			select {
			case update, ok := <-subscriber.Updates:
				if !ok {
					cancel()
					return
				}
				err := conn.WriteJSON(dto.VoteUpdateMessage{
					Event:      dto.SocketEventVoteUpdate,
					PollID:     update.PollID,
					Results:    update.Results,
					TotalVotes: update.TotalVotes,
				})
				if err != nil {
					cancel()
					return
				}
			case ack := <-acks:
				if err := conn.WriteJSON(ack); err != nil {
					cancel()
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	return nil
}
