package sessiontoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
)

func testSession() domainauth.Session {
	now := time.Now().Truncate(time.Second)
	return domainauth.Session{
		ID:        "sess-1",
		Subject:   "user-42",
		Email:     "user@example.com",
		Role:      domainauth.RoleCreator,
		Admin:     false,
		IssuedAt:  now,
		ExpiresAt: now.Add(5 * 24 * time.Hour),
	}
}

func TestCodec_IssueAndParse(t *testing.T) {
	codec, err := NewCodec("test-signing-key")
	require.NoError(t, err)

	sess := testSession()
	artifact, err := codec.Issue(sess)
	require.NoError(t, err)
	require.NotEmpty(t, artifact)

	parsed, err := codec.Parse(artifact)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, parsed.ID)
	assert.Equal(t, sess.Subject, parsed.Subject)
	assert.Equal(t, sess.Email, parsed.Email)
	assert.Equal(t, sess.Role, parsed.Role)
	assert.Equal(t, sess.Admin, parsed.Admin)
	assert.WithinDuration(t, sess.ExpiresAt, parsed.ExpiresAt, time.Second)
}

func TestNewCodec_RequiresKey(t *testing.T) {
	_, err := NewCodec("")
	assert.Error(t, err)
}

func TestCodec_Parse_Tampered(t *testing.T) {
	codec, err := NewCodec("test-signing-key")
	require.NoError(t, err)

	artifact, err := codec.Issue(testSession())
	require.NoError(t, err)

	tampered := artifact[:len(artifact)-2] + "xx"
	_, err = codec.Parse(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Parse_WrongKey(t *testing.T) {
	codec, err := NewCodec("key-one")
	require.NoError(t, err)
	other, err := NewCodec("key-two")
	require.NoError(t, err)

	artifact, err := codec.Issue(testSession())
	require.NoError(t, err)

	_, err = other.Parse(artifact)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Parse_Expired(t *testing.T) {
	codec, err := NewCodec("test-signing-key")
	require.NoError(t, err)

	sess := testSession()
	sess.IssuedAt = time.Now().Add(-6 * 24 * time.Hour)
	sess.ExpiresAt = time.Now().Add(-time.Hour)

	artifact, err := codec.Issue(sess)
	require.NoError(t, err)

	_, err = codec.Parse(artifact)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestCodec_Parse_Garbage(t *testing.T) {
	codec, err := NewCodec("test-signing-key")
	require.NoError(t, err)

	for _, artifact := range []string{"", "not-a-jwt", "a.b.c"} {
		_, parseErr := codec.Parse(artifact)
		assert.ErrorIs(t, parseErr, ErrInvalidToken, "artifact %q", artifact)
	}
}

func TestCodec_Issue_RequiresIDAndSubject(t *testing.T) {
	codec, err := NewCodec("test-signing-key")
	require.NoError(t, err)

	sess := testSession()
	sess.ID = ""
	_, err = codec.Issue(sess)
	assert.Error(t, err)

	sess = testSession()
	sess.Subject = ""
	_, err = codec.Issue(sess)
	assert.Error(t, err)
}
