package domain

import "context"

type Skill struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SkillRepository interface {
	GetAll(ctx context.Context) ([]Skill, error)
	GetByID(ctx context.Context, id int64) (*Skill, error)
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]Skill, error)
}
