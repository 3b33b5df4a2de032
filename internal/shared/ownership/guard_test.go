package ownership

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"articles-backend/internal/shared/apperror"
)

type ownedThing struct{ owner uuid.UUID }

func (o *ownedThing) OwnerID() uuid.UUID { return o.owner }

type exemptThing struct{ Name string }

func TestCheck_OwnerPasses(t *testing.T) {
	owner := uuid.New()

	assert.NoError(t, Check(&ownedThing{owner: owner}, owner))
}

func TestCheck_OtherActorForbidden(t *testing.T) {
	err := Check(&ownedThing{owner: uuid.New()}, uuid.New())

	assert.True(t, errors.Is(err, ErrNotOwner))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestCheck_ExemptResource(t *testing.T) {
	assert.NoError(t, Check(&exemptThing{Name: "Tolkien"}, uuid.New()))
	assert.NoError(t, Check(exemptThing{Name: "Tolkien"}, uuid.Nil))
}
