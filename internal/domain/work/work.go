package work

import (
	"context"
	"errors"

	"github.com/khoahotran/me-api/internal/domain/page"
	"github.com/khoahotran/me-api/pkg/optional"
)

// Work is one entry of the profile's work history. Dates are free-form
// strings such as "2023-01".
type Work struct {
	ID          int64   `json:"id"`
	Company     string  `json:"company"`
	Role        string  `json:"role"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description"`
	ProfileID   int64   `json:"profile_id"`
}

var ErrRequiredFieldNull = errors.New("company, role and start_date cannot be null")

type Update struct {
	Company     optional.Value[string]
	Role        optional.Value[string]
	StartDate   optional.Value[string]
	EndDate     optional.Value[*string]
	Description optional.Value[*string]
}

func (u Update) Validate() error {
	if u.Company.IsNull() || u.Role.IsNull() || u.StartDate.IsNull() {
		return ErrRequiredFieldNull
	}
	return nil
}

func (u Update) Apply(w *Work) {
	u.Company.ApplyTo(&w.Company)
	u.Role.ApplyTo(&w.Role)
	u.StartDate.ApplyTo(&w.StartDate)
	u.EndDate.ApplyTo(&w.EndDate)
	u.Description.ApplyTo(&w.Description)
}

type Repository interface {
	Create(ctx context.Context, w *Work) error
	FindByID(ctx context.Context, id int64) (*Work, error)
	List(ctx context.Context, p page.Page) ([]*Work, error)
	ListByProfile(ctx context.Context, profileID int64) ([]*Work, error)
	Update(ctx context.Context, w *Work) error
	Delete(ctx context.Context, id int64) error
}
