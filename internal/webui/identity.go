package webui

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campfire/internal/shared/util"
	"campfire/internal/webclient"
)

const nameCookieMaxAge = 365 * 24 * 60 * 60

// cookieNames keeps the display name in the campfire_username cookie.
type cookieNames struct {
	c *gin.Context
}

func (s cookieNames) Load(context.Context) (string, error) {
	raw, err := s.c.Cookie(webclient.NameKey)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", nil
		}
		return "", err
	}
	return util.SanitizeName(raw), nil
}

func (s cookieNames) Save(_ context.Context, name string) error {
	name = util.SanitizeName(name)
	if name == "" {
		return nil
	}
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(webclient.NameKey, name, nameCookieMaxAge, "/", "", false, false)
	return nil
}

var _ webclient.NameStore = cookieNames{}
