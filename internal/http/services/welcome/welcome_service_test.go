package welcome

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/loginconsent/internal/kratos"
	"github.com/dropDatabas3/loginconsent/internal/kratos/kratostest"
)

func TestView_WithSession(t *testing.T) {
	k := &kratostest.Fake{Logout: "http://kratos/self-service/logout?token=t"}
	s := NewWelcomeService(Deps{Kratos: k, BackofficeURL: "https://bo", OryAdminURL: "https://ory"})

	sess := kratostest.NewSession("s", "u")
	sess.Identity.VerifiableAddresses = []kratos.VerifiableAddress{
		{Value: "a@b.c", Verified: true},
		{Value: "x@y.z", Verified: false},
	}
	sess.Identity.MetadataPublic = map[string]any{"overlord": true}

	v := s.View(context.Background(), sess, "c=1")
	require.Equal(t, "Welcome to Ory", v.ProjectName)
	require.True(t, v.HasSession)
	require.Equal(t, "http://kratos/self-service/logout?token=t", v.LogoutURL)
	require.True(t, v.HasAddressToVerify)
	require.True(t, v.IsOverlord)
	require.Equal(t, "https://bo", v.BackofficeURL)
	require.Equal(t, "https://ory", v.OryAdminURL)
}

func TestView_NoSessionAndLogoutFailure(t *testing.T) {
	k := &kratostest.Fake{LogoutErr: errors.New("401")}
	v := NewWelcomeService(Deps{Kratos: k}).View(context.Background(), nil, "")

	require.False(t, v.HasSession)
	require.Empty(t, v.LogoutURL)
	require.False(t, v.HasAddressToVerify)
	require.False(t, v.IsOverlord)
}

func TestTruthy(t *testing.T) {
	require.False(t, truthy(nil))
	require.False(t, truthy(false))
	require.False(t, truthy(""))
	require.False(t, truthy(float64(0)))
	require.True(t, truthy("yes"))
	require.True(t, truthy(float64(1)))
	require.True(t, truthy(map[string]any{}))
}
