package datasource

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmylchreest/rowdata/internal/crawler"
	"github.com/jmylchreest/rowdata/pkg/race"
)

// Config describes one datasource, usually an entry of the datasources map
// in the config file.
type Config struct {
	Name     string      `mapstructure:"name" yaml:"name"`
	Tag      Tag         `mapstructure:"tag" yaml:"tag" validate:"required,oneof=html xlsx pdf"`
	Gender   race.Gender `mapstructure:"gender" yaml:"gender" validate:"omitempty,oneof=MALE FEMALE MIX"`
	Category string      `mapstructure:"category" yaml:"category"`

	// Concurrency caps the race pages fetched at once; 0 means 4.
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency" validate:"omitempty,min=1,max=16"`

	// Index, when its link selector or pattern is set, turns the source URL
	// into an index page listing races.
	Index crawler.Config `mapstructure:"index" yaml:"index"`
	HTML  HTMLConfig     `mapstructure:"html" yaml:"html"`
}

// HTMLConfig locates race data inside a results page.
type HTMLConfig struct {
	Title string `mapstructure:"title" yaml:"title"`
	Date  string `mapstructure:"date" yaml:"date"`
	// DateLayout is a time layout; empty means dd/mm/yyyy anywhere in the text.
	DateLayout string `mapstructure:"date_layout" yaml:"date_layout"`
	// Rows selects one element per participant; cells are its td/th children.
	Rows    string  `mapstructure:"rows" yaml:"rows"`
	Columns Columns `mapstructure:"columns" yaml:"columns"`
	Notes   string  `mapstructure:"notes" yaml:"notes"`
}

// Columns are 1-based cell positions; 0 means the column is absent.
type Columns struct {
	Club   int   `mapstructure:"club" yaml:"club" validate:"gte=0"`
	Series int   `mapstructure:"series" yaml:"series" validate:"gte=0"`
	Lane   int   `mapstructure:"lane" yaml:"lane" validate:"gte=0"`
	Laps   []int `mapstructure:"laps" yaml:"laps" validate:"dive,gte=1"`
	Time   int   `mapstructure:"time" yaml:"time" validate:"gte=0"`
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid datasource config")

const defaultConcurrency = 4

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		cfg := sl.Current().Interface().(Config)
		if cfg.Tag != TagHTML {
			return
		}
		if cfg.HTML.Rows == "" {
			sl.ReportError(cfg.HTML.Rows, "HTML.Rows", "Rows", "required_html", "")
		}
		if cfg.HTML.Columns.Club == 0 {
			sl.ReportError(cfg.HTML.Columns.Club, "HTML.Columns.Club", "Club", "required_html", "")
		}
	}, Config{})
	return v
}

// Validate checks the config and reports every offending field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		msgs = append(msgs, e.Namespace()+" "+formatValidationError(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_html":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", e.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}

func (c Config) concurrency() int {
	if c.Concurrency == 0 {
		return defaultConcurrency
	}
	return c.Concurrency
}
