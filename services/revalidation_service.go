package services

import (
	"log"

	"github.com/robfig/cron/v3"
)

type flusher interface {
	RevalidateAll()
}

// RevalidationService periodically drops every cached view so writes made
// outside this process (seeding, manual SQL) eventually show up.
type RevalidationService struct {
	cron  *cron.Cron
	views flusher
}

func NewRevalidationService(views flusher) *RevalidationService {
	return &RevalidationService{cron: cron.New(), views: views}
}

// StartScheduler registers the flush on spec and starts the cron loop.
func (s *RevalidationService) StartScheduler(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.RevalidateAll); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("Revalidation scheduler started (%s)", spec)
	return nil
}

func (s *RevalidationService) RevalidateAll() {
	s.views.RevalidateAll()
	log.Println("cache: revalidated all views")
}

// Stop halts the scheduler and waits for a running flush to finish.
func (s *RevalidationService) Stop() {
	<-s.cron.Stop().Done()
}
