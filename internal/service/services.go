package service

import (
	"github.com/pollify/backend/internal/client"
	"github.com/pollify/backend/internal/dto"
	"github.com/pollify/backend/internal/repository"
)

type Services interface {
	Auth() AuthService
	Poll() PollService
	Vote() VoteService
	Admin() AdminService
	Broker() PollBroker
}

type services struct {
	authService  AuthService
	pollService  PollService
	voteService  VoteService
	adminService AdminService
	pollBroker   PollBroker
}

func NewServices(repositories repository.Repositories, config dto.Config, clients client.Clients) Services {
	pollBroker := NewPollBroker(clients.RabbitMQClient())
	authService := newAuthService(repositories.User(), config)
	pollService := newPollService(repositories.Poll(), repositories.Vote(), config)
	voteService := newVoteService(repositories.Poll(), repositories.Vote(), pollService, pollBroker)
	adminService := newAdminService(repositories.User(), repositories.Poll(), repositories.Vote())
	return &services{
		authService:  authService,
		pollService:  pollService,
		voteService:  voteService,
		adminService: adminService,
		pollBroker:   pollBroker,
	}
}

func (s services) Auth() AuthService {
	return s.authService
}

func (s services) Poll() PollService {
	return s.pollService
}

func (s services) Vote() VoteService {
	return s.voteService
}

func (s services) Admin() AdminService {
	return s.adminService
}

func (s services) Broker() PollBroker {
	return s.pollBroker
}
