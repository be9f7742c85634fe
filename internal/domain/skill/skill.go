package skill

import (
	"context"
	"errors"

	"github.com/khoahotran/me-api/internal/domain/page"
	"github.com/khoahotran/me-api/pkg/optional"
)

type Skill struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
	ProfileID   int64  `json:"profile_id"`
}

var ErrRequiredFieldNull = errors.New("name and proficiency cannot be null")

type Update struct {
	Name        optional.Value[string]
	Proficiency optional.Value[string]
}

func (u Update) Validate() error {
	if u.Name.IsNull() || u.Proficiency.IsNull() {
		return ErrRequiredFieldNull
	}
	return nil
}

func (u Update) Apply(s *Skill) {
	u.Name.ApplyTo(&s.Name)
	u.Proficiency.ApplyTo(&s.Proficiency)
}

type Repository interface {
	Create(ctx context.Context, s *Skill) error
	FindByID(ctx context.Context, id int64) (*Skill, error)
	List(ctx context.Context, p page.Page) ([]*Skill, error)
	// Top orders by name ascending.
	Top(ctx context.Context, limit int) ([]*Skill, error)
	ListByProfile(ctx context.Context, profileID int64) ([]*Skill, error)
	Update(ctx context.Context, s *Skill) error
	Delete(ctx context.Context, id int64) error
}
