package pgstore

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjiri1684/study_platform/database"
)

func TestValidID(t *testing.T) {
	id := uuid.NewString()
	tests := []struct {
		id   string
		want bool
	}{
		{id, true},
		{strings.ToUpper(id), true},
		{"", false},
		{"abc", false},
		{"urn:uuid:" + id, false},
		{"{" + id + "}", false},
		{strings.ReplaceAll(id, "-", ""), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validID(tt.id), tt.id)
	}
}

// The repositories below have no database handle: a malformed id must be
// answered before any query is built.
func TestMalformedIDsNeverReachPostgres(t *testing.T) {
	ctx := context.Background()
	sessions := &sessionRepo{}
	materials := &materialRepo{}
	notes := &noteRepo{}
	bookings := &bookingRepo{}

	_, err := sessions.FindByID(ctx, "abc")
	assert.ErrorIs(t, err, database.ErrNotFound)
	_, err = sessions.Details(ctx, "abc")
	assert.ErrorIs(t, err, database.ErrNotFound)
	_, err = bookings.FindByID(ctx, "abc")
	assert.ErrorIs(t, err, database.ErrNotFound)
	_, err = materials.FindByID(ctx, "abc")
	assert.ErrorIs(t, err, database.ErrNotFound)
	_, err = notes.FindByID(ctx, "abc")
	assert.ErrorIs(t, err, database.ErrNotFound)

	upd, err := sessions.Transition(ctx, "abc", database.SessionChange{})
	require.NoError(t, err)
	assert.True(t, upd.Acknowledged)
	assert.Zero(t, upd.MatchedCount)

	del, err := sessions.Delete(ctx, "abc")
	require.NoError(t, err)
	assert.Zero(t, del.DeletedCount)

	upd, err = materials.Update(ctx, "abc", "", database.MaterialChange{})
	require.NoError(t, err)
	assert.Zero(t, upd.MatchedCount)
	del, err = materials.Delete(ctx, "abc", "tutor@x.io")
	require.NoError(t, err)
	assert.Zero(t, del.DeletedCount)

	upd, err = notes.Update(ctx, "abc", "s@x.io", database.NoteChange{})
	require.NoError(t, err)
	assert.Zero(t, upd.MatchedCount)
	del, err = notes.Delete(ctx, "abc", "s@x.io")
	require.NoError(t, err)
	assert.Zero(t, del.DeletedCount)
}

func TestChangesSkipsNilFields(t *testing.T) {
	title := "new"
	assert.Equal(t, map[string]any{"title": "new"}, changes(map[string]*string{"title": &title, "link": nil}))
}
