package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clipstack/video-editor-backend/internal/jobs"
	"github.com/clipstack/video-editor-backend/internal/videos"
	videosRepository "github.com/clipstack/video-editor-backend/internal/videos/repository"
)

type sessionFactory struct {
	db *sqlx.DB
}

// NewSessionFactory builds sessions that pin all repository calls of one job
// execution to a single pooled connection.
func NewSessionFactory(db *sqlx.DB) jobs.SessionFactory {
	return &sessionFactory{db: db}
}

func (f *sessionFactory) Open(ctx context.Context) (jobs.Session, error) {
	conn, err := f.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open job session: %w", err)
	}
	return &session{
		conn:       conn,
		jobsRepo:   NewJobsRepo(conn),
		videosRepo: videosRepository.NewVideosRepo(conn),
	}, nil
}

type session struct {
	conn       *sqlx.Conn
	jobsRepo   jobs.Repository
	videosRepo videos.Repository
}

func (s *session) Jobs() jobs.Repository {
	return s.jobsRepo
}

func (s *session) Videos() videos.Repository {
	return s.videosRepo
}

func (s *session) Close() error {
	return s.conn.Close()
}
