package config

import "github.com/dshills/hardmode/internal/config/registry"

// Metric buckets for boolean nodes.
const (
	MetricDisabled = 0
	MetricEnabled  = 1
	MetricMixed    = 2
)

// MetricsValue summarizes a boolean node over every resolved scope:
// MetricDisabled when it is off everywhere, MetricEnabled when it is on in
// all scopes and MetricMixed otherwise. Other node types return
// ErrUnsupported.
func (c *Config) MetricsValue(node string) (int, error) {
	n, err := c.node(node)
	if err != nil {
		return 0, err
	}
	if n.Type != registry.TypeBoolean {
		return 0, unsupported(n)
	}

	scopes := c.Scopes()
	if len(scopes) == 0 {
		return MetricDisabled, nil
	}

	on := 0
	for _, scope := range scopes {
		b, err := c.GetBool(node, scope)
		if err != nil {
			return 0, err
		}
		if b {
			on++
		}
	}

	switch on {
	case 0:
		return MetricDisabled, nil
	case len(scopes):
		return MetricEnabled, nil
	default:
		return MetricMixed, nil
	}
}
