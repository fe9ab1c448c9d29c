package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvContext says where a storefront variable may be read.
type EnvContext string

// EnvAccess says whether a storefront variable may be shown.
type EnvAccess string

const (
	ContextServer EnvContext = "server"
	ContextClient EnvContext = "client"

	AccessSecret EnvAccess = "secret"
	AccessPublic EnvAccess = "public"
)

// EnvField declares one storefront environment variable.
// A field that is neither Optional nor has a Default must be set.
type EnvField struct {
	Name     string
	Context  EnvContext
	Access   EnvAccess
	Optional bool
	Default  string
}

func (f EnvField) required() bool {
	return !f.Optional && f.Default == ""
}

// StorefrontSchema lists the variables the storefront reads.
// The Stripe key default is a placeholder, set STRIPE_SECRET_KEY for real payments.
var StorefrontSchema = []EnvField{
	{Name: "STRIPE_SECRET_KEY", Context: ContextServer, Access: AccessSecret, Default: "sk_test_placeholder"},
	{Name: "FATHOM_SITE_ID", Context: ContextClient, Access: AccessPublic, Optional: true},
	{Name: "GOOGLE_GEOLOCATION_SERVER_KEY", Context: ContextServer, Access: AccessSecret, Optional: true},
	{Name: "GOOGLE_MAPS_BROWSER_KEY", Context: ContextClient, Access: AccessPublic, Optional: true},
	{Name: "LOOPS_API_KEY", Context: ContextServer, Access: AccessSecret, Optional: true},
	{Name: "LOOPS_SHOP_TRANSACTIONAL_ID", Context: ContextServer, Access: AccessPublic, Optional: true},
	{Name: "LOOPS_FULFILLMENT_TRANSACTIONAL_ID", Context: ContextServer, Access: AccessPublic, Optional: true},
	{Name: "LOOPS_FULFILLMENT_EMAIL", Context: ContextServer, Access: AccessPublic, Optional: true},
	{Name: "SHOP_API_URL", Context: ContextServer, Access: AccessPublic, Optional: true},
	{Name: "SHOP_API_KEY", Context: ContextServer, Access: AccessSecret, Optional: true},
	// shipping standard
	{Name: "US_SHIPPING_RATE_ID", Context: ContextServer, Access: AccessSecret, Default: "shr_1QUBcPLYHI0LeDzU6cdaJjEf"},
	// shipping international
	{Name: "INTERNATIONAL_SHIPPING_RATE_ID", Context: ContextServer, Access: AccessSecret, Default: "shr_1QUBjmLYHI0LeDzUQx8jlhad"},
}

// Site holds the public site settings served next to the client variables.
type Site struct {
	URL          string   `json:"site"`
	ImageDomains []string `json:"imageDomains"`
}

// DefaultSite returns the storefront site settings.
func DefaultSite() Site {
	return Site{
		URL:          "https://astrostorefront.netlify.app",
		ImageDomains: []string{"localhost", "a.storyblok.com", "astrostorefront.netlify.app"},
	}
}

// ErrMissingEnv is returned when a required storefront variable is not set.
var ErrMissingEnv = errors.New("missing required environment variable")

// Env is the resolved storefront environment.
type Env struct {
	fields map[string]EnvField
	values map[string]string
}

// LoadEnv resolves schema from defaults, then envFile (skipped when absent or ""), then the
// process environment. Variables outside the schema are ignored.
func LoadEnv(schema []EnvField, envFile string) (*Env, error) {
	k := koanf.New(".")
	fields := make(map[string]EnvField, len(schema))
	defaults := make(map[string]any)
	for _, f := range schema {
		fields[f.Name] = f
		if f.Default != "" {
			defaults[f.Name] = f.Default
		}
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load env defaults: %w", err)
	}

	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		known := make(map[string]any)
		for name, v := range fileValues {
			if _, ok := fields[name]; ok && v != "" {
				known[name] = v
			}
		}
		if err := k.Load(confmap.Provider(known, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	onlySchema := func(name string) string {
		if _, ok := fields[name]; !ok || os.Getenv(name) == "" {
			return ""
		}
		return name
	}
	if err := k.Load(env.Provider("", ".", onlySchema), nil); err != nil {
		return nil, fmt.Errorf("failed to load process env: %w", err)
	}

	e := &Env{fields: fields, values: make(map[string]string, len(schema))}
	var missing []error
	for _, f := range schema {
		if v := k.String(f.Name); v != "" {
			e.values[f.Name] = v
			continue
		}
		if f.required() {
			missing = append(missing, fmt.Errorf("%s: %w", f.Name, ErrMissingEnv))
		}
	}
	if err := errors.Join(missing...); err != nil {
		return nil, err
	}
	return e, nil
}

// Get returns the value of a variable and whether it is set.
func (e *Env) Get(name string) (string, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Public returns the variables a browser may see: client context with public access.
func (e *Env) Public() map[string]string {
	public := make(map[string]string)
	for name, v := range e.values {
		f := e.fields[name]
		if f.Context == ContextClient && f.Access == AccessPublic {
			public[name] = v
		}
	}
	return public
}

// String lists the set variables with secrets masked.
func (e *Env) String() string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("\n--- Storefront Env ---\n")
	for _, name := range names {
		v := e.values[name]
		f := e.fields[name]
		if f.Access == AccessSecret {
			v = "****"
		}
		b.WriteString(fmt.Sprintf("  %s (%s/%s): %s\n", name, f.Context, f.Access, v))
	}
	return b.String()
}
