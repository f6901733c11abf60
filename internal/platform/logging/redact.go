package logging

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/m-mizutani/masq"
)

// secretFields are masked in every spelling a log call or struct might use:
// as written, camelCase and PascalCase.
var secretFields = []string{
	"password", "confirm_password", "secret", "token",
	"api_key", "apikey", "anon_key",
	"access_token", "refresh_token",
	"credential", "credentials", "authorization", "auth", "bearer", "cookie",
	"session", "private_key", "secret_key",
}

var secretPrefixes = []string{"secret", "private"}

// Values that are credentials whatever their key: JWTs and auth header values.
var secretValues = []*regexp.Regexp{
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
	regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`),
}

// spellings returns name, its camelCase and its PascalCase form.
func spellings(name string) []string {
	parts := strings.Split(name, "_")
	for i := 1; i < len(parts); i++ {
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}

	camel := strings.Join(parts, "")
	pascal := strings.ToUpper(camel[:1]) + camel[1:]

	if camel == name {
		return []string{name, pascal}
	}

	return []string{name, camel, pascal}
}

// DefaultRedactOptions keeps session tokens, passwords and the backend key
// out of every log sink.
func DefaultRedactOptions() []masq.Option {
	var opts []masq.Option

	for _, field := range secretFields {
		for _, name := range spellings(field) {
			opts = append(opts, masq.WithFieldName(name))
		}
	}

	for _, prefix := range secretPrefixes {
		opts = append(opts, masq.WithFieldPrefix(prefix))
	}

	for _, re := range secretValues {
		opts = append(opts, masq.WithRegex(re))
	}

	return opts
}

// NewReplaceAttr returns a slog ReplaceAttr that redacts with the default
// options plus opts.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
