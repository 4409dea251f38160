// Package config loads the book and report configuration.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ledgercast/ledgercast/internal/common"
)

// ReportConfig locates the book file and names the account subtrees the
// balance report tracks.
type ReportConfig struct {
	// BookPath is the GnuCash sqlite file to read.
	BookPath string
	// CheckingsParentGUID roots the asset subtree whose transfers and
	// opening balance feed the checkings series.
	CheckingsParentGUID string
	// LiabilitiesParentGUID roots the subtree seeding the liability
	// series. Optional: without it the liability series starts at zero.
	LiabilitiesParentGUID string
}

// LoadReportConfig resolves the report configuration with this precedence:
// 1. Viper configuration (config file or LEDGERCAST_ env vars)
// 2. Direct environment variables (LEDGERCAST_BOOK_PATH, ...)
func LoadReportConfig() (*ReportConfig, error) {
	config := &ReportConfig{}

	if v := viper.GetString("book.path"); v != "" {
		config.BookPath = ExpandPath(v)
	}
	if v := viper.GetString("report.checkings_parent"); v != "" {
		config.CheckingsParentGUID = v
	}
	if v := viper.GetString("report.liabilities_parent"); v != "" {
		config.LiabilitiesParentGUID = v
	}

	if config.BookPath == "" {
		if v := os.Getenv("LEDGERCAST_BOOK_PATH"); v != "" {
			config.BookPath = ExpandPath(v)
		}
	}
	if config.CheckingsParentGUID == "" {
		config.CheckingsParentGUID = os.Getenv("LEDGERCAST_CHECKINGS_PARENT")
	}
	if config.LiabilitiesParentGUID == "" {
		config.LiabilitiesParentGUID = os.Getenv("LEDGERCAST_LIABILITIES_PARENT")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that the configuration can open a book.
func (c *ReportConfig) Validate() error {
	if c.BookPath == "" {
		return fmt.Errorf("%w: book.path is required (or LEDGERCAST_BOOK_PATH)", common.ErrMissingConfig)
	}
	return nil
}
