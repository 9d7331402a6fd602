package ldap

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"ihavefood/internal/config"
	"ihavefood/internal/identity"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog/log"
)

// Authenticator signs customers in against a directory instead of the
// identity HTTP service.
type Authenticator struct {
	settings *config.SettingsType
}

func NewAuthenticator(settings *config.SettingsType) *Authenticator {
	return &Authenticator{settings: settings}
}

type loginResponse struct {
	Identifier string `json:"identifier"`
	Role       string `json:"role"`
	DN         string `json:"dn"`
}

func (a *Authenticator) Login(ctx context.Context, creds identity.Credentials) (identity.Response, error) {
	if err := ctx.Err(); err != nil {
		return identity.Response{}, fmt.Errorf("%w: %w", identity.ErrNetwork, err)
	}

	conn, err := dialLDAP(a.settings)
	if err != nil {
		return identity.Response{}, fmt.Errorf("%w: %w", identity.ErrNetwork, err)
	}
	defer conn.Close()

	user, mail := mailAddress(creds.Identifier, a.settings.Get(config.LDAP_USER_DOMAIN))
	bindID := bindIdentity(a.settings.Get(config.LDAP_BIND_FORMAT), user, mail)

	if err := conn.Bind(bindID, creds.Password); err != nil {
		log.Debug().Err(err).Str("bind_id", bindID).Msg("ldap bind failed")
		return identity.Response{}, bindError(err)
	}

	filter := fmt.Sprintf(a.settings.Get(config.LDAP_USER_FILTER), ldap.EscapeFilter(mail))
	searchReq := ldap.NewSearchRequest(
		a.settings.Get(config.LDAP_BASE_DN),
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases, 1, 0, false,
		filter,
		[]string{"dn"},
		nil,
	)

	sr, err := conn.Search(searchReq)
	if err != nil {
		return identity.Response{}, fmt.Errorf("%w: ldap search: %w", identity.ErrNetwork, err)
	}
	if len(sr.Entries) == 0 {
		return identity.Response{}, &identity.AuthError{Status: http.StatusNotFound, Message: "user not found"}
	}

	body, err := json.Marshal(loginResponse{
		Identifier: creds.Identifier,
		Role:       creds.Role,
		DN:         sr.Entries[0].DN,
	})
	if err != nil {
		return identity.Response{}, fmt.Errorf("%w: %w", identity.ErrParse, err)
	}
	return identity.Response{Body: body}, nil
}

// Ping dials the directory without binding.
func (a *Authenticator) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	conn, err := dialLDAP(a.settings)
	if err != nil {
		return fmt.Errorf("%w: %w", identity.ErrNetwork, err)
	}
	return conn.Close()
}

// bindIdentity is the mail form of the user, or format applied to the
// escaped local part when a bind format is configured.
func bindIdentity(format, user, mail string) string {
	if format == "" {
		return mail
	}
	return fmt.Sprintf(format, ldap.EscapeDN(user))
}

// bindError maps a failed bind. Only a wrong password is a rejection; busy,
// unavailable and every other result are backend failures.
func bindError(err error) error {
	if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
		return &identity.AuthError{Status: http.StatusUnauthorized, Message: "invalid credentials"}
	}
	return fmt.Errorf("%w: ldap bind: %w", identity.ErrNetwork, err)
}

// mailAddress returns the local part and the mail form of identifier.
func mailAddress(identifier, userMailDomain string) (string, string) {
	identifier = strings.TrimSpace(identifier)
	if idx := strings.LastIndex(identifier, "@"); idx > 0 {
		return identifier[:idx], identifier
	}
	if userMailDomain == "" {
		return identifier, identifier
	}
	domain := userMailDomain
	if !strings.HasPrefix(domain, "@") {
		domain = "@" + domain
	}
	return identifier, identifier + domain
}

func dialLDAP(settings *config.SettingsType) (*ldap.Conn, error) {
	ldapUrl := settings.Get(config.LDAP_URL)
	insecureSkipVerify := settings.IsTrue(config.LDAP_SKIP_TLS_VERIFY)
	startTLS := settings.IsTrue(config.LDAP_STARTTLS)

	// #nosec G402 -- skip TLS verification if configured
	conn, err := ldap.DialURL(ldapUrl, ldap.DialWithTLSConfig(&tls.Config{InsecureSkipVerify: insecureSkipVerify}))
	if err != nil {
		return nil, err
	}

	if startTLS && strings.HasPrefix(ldapUrl, "ldap://") {
		// #nosec G402 -- skip TLS verification if configured
		if err := conn.StartTLS(&tls.Config{InsecureSkipVerify: insecureSkipVerify}); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	return conn, nil
}
