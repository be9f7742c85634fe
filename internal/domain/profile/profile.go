package profile

import (
	"context"
	"errors"

	"github.com/khoahotran/me-api/pkg/optional"
)

type Profile struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Education string  `json:"education"`
	Github    *string `json:"github"`
	Linkedin  *string `json:"linkedin"`
}

var ErrRequiredFieldNull = errors.New("name, email and education cannot be null")

// Update lists the fields a partial update may touch.
type Update struct {
	Name      optional.Value[string]
	Email     optional.Value[string]
	Education optional.Value[string]
	Github    optional.Value[*string]
	Linkedin  optional.Value[*string]
}

func (u Update) Validate() error {
	if u.Name.IsNull() || u.Email.IsNull() || u.Education.IsNull() {
		return ErrRequiredFieldNull
	}
	return nil
}

func (u Update) Apply(p *Profile) {
	u.Name.ApplyTo(&p.Name)
	u.Email.ApplyTo(&p.Email)
	u.Education.ApplyTo(&p.Education)
	u.Github.ApplyTo(&p.Github)
	u.Linkedin.ApplyTo(&p.Linkedin)
}

// Repository stores the single profile row.
//
// Create must fail with apperror.ErrAlreadyExists when a profile is already
// stored, atomically with the insert. First returns apperror.ErrNotFound when
// no profile exists. Delete removes the profile's skills, projects and work.
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	First(ctx context.Context) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, id int64) error
}
