// Package config defines the data structures related to deal configuration
// and includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"time"

	"github.com/propbooks/mortgage-split/pkg/constants"
	"github.com/propbooks/mortgage-split/pkg/mortgage"
	"github.com/propbooks/mortgage-split/pkg/validation"
	"github.com/spf13/viper"
)

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for mortgage-split.
type Configuration struct {
	Deals   []Deal
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Deal describes one property loan and the mortgage payments recorded
// against it.
type Deal struct {
	Name               string
	OriginalLoanAmount float64
	InterestRate       float64 // annual percentage, e.g. 7.125
	LoanTermMonths     int
	CloseDate          string
	FirstPaymentDate   string // optional; authoritative anchor when set
	PaymentFrequency   string // monthly, semimonthly, biweekly
	MonthlyTaxes       float64
	MonthlyInsurance   float64
	Payments           []PaymentRecord
}

// PaymentRecord is one observed mortgage payment: the date it was recorded
// and the full cash amount moved.
type PaymentRecord struct {
	Date   string
	Amount float64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from the
// given reader; used by the HTTP upload path.
func LoadConfigurationFromReader(reader io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(reader); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoanTerms converts the deal's stored fields into the engine's loan terms.
func (deal *Deal) LoanTerms() (mortgage.LoanTerms, error) {
	closeDate, err := time.Parse(DateLayout, deal.CloseDate)
	if err != nil {
		return mortgage.LoanTerms{}, fmt.Errorf("deal %s: invalid close date %q: %w", deal.Name, deal.CloseDate, err)
	}

	terms := mortgage.LoanTerms{
		OriginalPrincipal: deal.OriginalLoanAmount,
		AnnualRatePercent: deal.InterestRate,
		TermMonths:        deal.LoanTermMonths,
		CloseDate:         closeDate,
		Frequency:         mortgage.ParseFrequency(deal.PaymentFrequency),
	}

	if deal.FirstPaymentDate != "" {
		firstPayment, err := time.Parse(DateLayout, deal.FirstPaymentDate)
		if err != nil {
			return mortgage.LoanTerms{}, fmt.Errorf("deal %s: invalid first payment date %q: %w", deal.Name, deal.FirstPaymentDate, err)
		}
		terms.FirstPaymentDate = &firstPayment
	}

	return terms, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(conf.Deals) == 0 {
		warnings = append(warnings, "configuration contains no deals")
	}

	for _, deal := range conf.Deals {
		var payments []validation.PaymentInfo
		for _, payment := range deal.Payments {
			payments = append(payments, validation.PaymentInfo{
				Date:   payment.Date,
				Amount: payment.Amount,
			})
		}

		warnings = append(warnings, validation.ValidateDeal(validation.DealInfo{
			Name:             deal.Name,
			Principal:        deal.OriginalLoanAmount,
			InterestRate:     deal.InterestRate,
			TermMonths:       deal.LoanTermMonths,
			Frequency:        deal.PaymentFrequency,
			CloseDate:        deal.CloseDate,
			FirstPaymentDate: deal.FirstPaymentDate,
			MonthlyTaxes:     deal.MonthlyTaxes,
			MonthlyInsurance: deal.MonthlyInsurance,
			Payments:         payments,
		})...)
	}

	return warnings
}
