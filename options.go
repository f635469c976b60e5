package probedmap

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type options struct {
	logger   logrus.FieldLogger
	registry prometheus.Registerer
	name     string
}

func defaultOptions() options {
	return options{logger: logrus.StandardLogger()}
}

// Option configures a Map at construction.
type Option func(*options)

// WithLogger sets the logger a Map reports rejected inserts to. A nil logger
// leaves the standard logrus logger in place.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records probe lengths and TableFull rejections in reg, labelled
// with name. Maps registered under the same name share their series.
func WithMetrics(reg prometheus.Registerer, name string) Option {
	return func(o *options) {
		o.registry = reg
		o.name = name
	}
}
