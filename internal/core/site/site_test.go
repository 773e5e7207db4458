// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/achievement"
	"github.com/taibuivan/folio/internal/core/certification"
	"github.com/taibuivan/folio/internal/core/project"
	"github.com/taibuivan/folio/internal/core/setting"
	"github.com/taibuivan/folio/internal/core/site"
	"github.com/taibuivan/folio/internal/core/skill"
	"github.com/taibuivan/folio/internal/platform/apperr"
)

type stubSettings struct {
	values map[string]string
	err    error
}

func (s stubSettings) Map(context.Context) (map[string]string, error) { return s.values, s.err }

type stubProjects struct {
	last *project.Filter
}

func (s *stubProjects) List(_ context.Context, filter project.Filter) ([]*project.Project, error) {
	s.last = &filter
	return []*project.Project{{ID: "p1", Title: "Folio", Featured: true}}, nil
}

type stubSkills struct{}

func (stubSkills) Grouped(context.Context) ([]skill.Group, error) {
	return []skill.Group{{Category: "backend", Skills: []*skill.Skill{{Name: "Go"}}}}, nil
}

type stubCertifications struct{}

func (stubCertifications) List(context.Context, certification.Filter) ([]*certification.Certification, error) {
	return []*certification.Certification{{ID: "c1"}}, nil
}

type stubAchievements struct{}

func (stubAchievements) List(context.Context, achievement.Filter) ([]*achievement.Achievement, error) {
	return []*achievement.Achievement{{ID: "a1"}}, nil
}

func newSources(settings stubSettings, projects *stubProjects) site.Sources {
	return site.Sources{
		Settings:       settings,
		Projects:       projects,
		Skills:         stubSkills{},
		Certifications: stubCertifications{},
		Achievements:   stubAchievements{},
	}
}

/* TestHome asks for four featured projects. */
func TestHome(t *testing.T) {
	projects := &stubProjects{}
	service := site.NewService(newSources(stubSettings{values: map[string]string{setting.KeySiteTitle: "Folio"}}, projects))

	home, err := service.Home(context.Background())
	require.NoError(t, err)

	require.NotNil(t, projects.last)
	assert.True(t, *projects.last.Featured)
	assert.Equal(t, site.FeaturedLimit, projects.last.Limit)
	assert.Equal(t, "Folio", home.Settings[setting.KeySiteTitle])
	assert.Len(t, home.Featured, 1)
	assert.Len(t, home.Skills, 1)
}

/* TestAbout collects skills, certifications and achievements. */
func TestAbout(t *testing.T) {
	service := site.NewService(newSources(stubSettings{values: map[string]string{}}, &stubProjects{}))

	about, err := service.About(context.Background())
	require.NoError(t, err)
	assert.Len(t, about.Skills, 1)
	assert.Len(t, about.Certifications, 1)
	assert.Len(t, about.Achievements, 1)
}

/* TestHandler_Contact exposes the contact details and surfaces storage errors. */
func TestHandler_Contact(t *testing.T) {
	values := map[string]string{
		setting.KeyContactEmail: "me@example.com",
		setting.KeySocialGithub: "https://github.com/me",
	}
	router := chi.NewRouter()
	site.NewHandler(site.NewService(newSources(stubSettings{values: values}, &stubProjects{}))).RegisterRoutes(router)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/contact", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t,
		`{"data":{"email":"me@example.com","github":"https://github.com/me","linkedin":"","twitter":""}}`,
		recorder.Body.String())

	broken := chi.NewRouter()
	site.NewHandler(site.NewService(newSources(stubSettings{err: apperr.StorageError(nil)}, &stubProjects{}))).RegisterRoutes(broken)

	recorder = httptest.NewRecorder()
	broken.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/about", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
