package token_test

import (
	"testing"
	"time"

	"github.com/forumlab/backend/pkg/token"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID string `json:"id"`
}

func TestJWT(t *testing.T) {
	engine := token.NewEngine[payload]("secret", time.Minute)
	tkn, err := engine.Generate("user1", payload{ID: "user1"})
	require.NoError(t, err)

	obj, err := engine.Verify(tkn)
	require.NoError(t, err)
	require.Equal(t, "user1", obj.ID)
}

func TestJWTExpiration(t *testing.T) {
	engine := token.NewEngine[payload]("secret", -time.Minute)
	tkn, err := engine.Generate("user1", payload{ID: "user1"})
	require.NoError(t, err)

	_, err = engine.Verify(tkn)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	engine := token.NewEngine[payload]("secret", time.Minute)
	tkn, err := engine.Generate("user1", payload{ID: "user1"})
	require.NoError(t, err)

	another := token.NewEngine[payload]("another-secret", time.Minute)
	_, err = another.Verify(tkn)
	require.Error(t, err)
}
