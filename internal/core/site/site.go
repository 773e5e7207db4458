// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package site assembles the public pages.

Each page is one read-only view over several content types:

  - Home: settings, up to four featured projects and skills grouped by category.
  - About: settings, grouped skills, certifications and achievements.
  - Contact: the contact address and social links.
*/
package site

import (
	"context"

	"github.com/taibuivan/folio/internal/core/achievement"
	"github.com/taibuivan/folio/internal/core/certification"
	"github.com/taibuivan/folio/internal/core/project"
	"github.com/taibuivan/folio/internal/core/setting"
	"github.com/taibuivan/folio/internal/core/skill"
	"github.com/taibuivan/folio/pkg/pointer"
)

// FeaturedLimit is the number of projects on the home page.
const FeaturedLimit = 4

// # Sources

type SettingSource interface {
	Map(ctx context.Context) (map[string]string, error)
}

type ProjectSource interface {
	List(ctx context.Context, filter project.Filter) ([]*project.Project, error)
}

type SkillSource interface {
	Grouped(ctx context.Context) ([]skill.Group, error)
}

type CertificationSource interface {
	List(ctx context.Context, filter certification.Filter) ([]*certification.Certification, error)
}

type AchievementSource interface {
	List(ctx context.Context, filter achievement.Filter) ([]*achievement.Achievement, error)
}

// Sources groups the services the pages read from.
type Sources struct {
	Settings       SettingSource
	Projects       ProjectSource
	Skills         SkillSource
	Certifications CertificationSource
	Achievements   AchievementSource
}

// # Pages

type Home struct {
	Settings map[string]string  `json:"settings"`
	Featured []*project.Project `json:"featured_projects"`
	Skills   []skill.Group      `json:"skills"`
}

type About struct {
	Settings       map[string]string              `json:"settings"`
	Skills         []skill.Group                  `json:"skills"`
	Certifications []*certification.Certification `json:"certifications"`
	Achievements   []*achievement.Achievement     `json:"achievements"`
}

type Contact struct {
	Email    string `json:"email"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
}

// Service builds the public pages.
type Service struct {
	sources Sources
}

func NewService(sources Sources) *Service {
	return &Service{sources: sources}
}

// Home builds the landing page.
func (service *Service) Home(context context.Context) (*Home, error) {
	settings, err := service.sources.Settings.Map(context)
	if err != nil {
		return nil, err
	}

	featured, err := service.sources.Projects.List(context, project.Filter{
		Featured: pointer.To(true),
		Limit:    FeaturedLimit,
	})
	if err != nil {
		return nil, err
	}

	skills, err := service.sources.Skills.Grouped(context)
	if err != nil {
		return nil, err
	}

	return &Home{Settings: settings, Featured: featured, Skills: skills}, nil
}

// About builds the about page.
func (service *Service) About(context context.Context) (*About, error) {
	settings, err := service.sources.Settings.Map(context)
	if err != nil {
		return nil, err
	}

	skills, err := service.sources.Skills.Grouped(context)
	if err != nil {
		return nil, err
	}

	certifications, err := service.sources.Certifications.List(context, certification.Filter{})
	if err != nil {
		return nil, err
	}

	achievements, err := service.sources.Achievements.List(context, achievement.Filter{})
	if err != nil {
		return nil, err
	}

	return &About{
		Settings:       settings,
		Skills:         skills,
		Certifications: certifications,
		Achievements:   achievements,
	}, nil
}

// Contact returns the public contact details.
func (service *Service) Contact(context context.Context) (*Contact, error) {
	settings, err := service.sources.Settings.Map(context)
	if err != nil {
		return nil, err
	}

	return &Contact{
		Email:    settings[setting.KeyContactEmail],
		GitHub:   settings[setting.KeySocialGithub],
		LinkedIn: settings[setting.KeySocialLinkedIn],
		Twitter:  settings[setting.KeySocialTwitter],
	}, nil
}
