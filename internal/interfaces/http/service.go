package httpinterface

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	interfaces "github.com/JerryMichels/bitpay-app/internal/interfaces"
	httphandler "github.com/JerryMichels/bitpay-app/internal/interfaces/http/handler"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type service struct {
	opts   ServiceOpts
	server *http.Server
}

type ServiceOpts struct {
	Address     string
	CORSOrigins []string
	Services    httphandler.Services
}

func (o ServiceOpts) validate() error {
	if _, _, err := net.SplitHostPort(o.Address); err != nil {
		return fmt.Errorf("invalid address %s: %w", o.Address, err)
	}
	if o.Services.Wallet == nil {
		return fmt.Errorf("wallet app service must not be null")
	}
	if o.Services.Fee == nil {
		return fmt.Errorf("fee app service must not be null")
	}
	if o.Services.Settings == nil {
		return fmt.Errorf("settings app service must not be null")
	}
	if o.Services.PubSub == nil {
		return fmt.Errorf("pubsub app service must not be null")
	}
	return nil
}

// NewService returns the REST interface of the daemon.
func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}
	return &service{opts: opts}, nil
}

func (s *service) Start() error {
	origins := s.opts.CORSOrigins
	if len(origins) <= 0 {
		origins = []string{"*"}
	}
	handler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	}).Handler(httphandler.NewRouter(s.opts.Services))

	lis, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.server.Serve(lis); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("rest interface stopped unexpectedly")
		}
	}()

	log.Infof("rest interface listening on %s", lis.Addr())
	return nil
}

func (s *service) Stop() {
	if s.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("an error occured while stopping rest interface")
		return
	}
	log.Debug("disabled rest interface")
}
