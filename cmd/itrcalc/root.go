package main

import (
	"fmt"

	"github.com/itrdesk/tax-engine/internal/calculation"
	"github.com/itrdesk/tax-engine/internal/config"
	"github.com/itrdesk/tax-engine/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app holds what every subcommand needs once flags and environment are read
type app struct {
	cfg    *config.AppConfig
	logger *logrus.Logger
	parser *config.InputParser
	engine *calculation.Engine

	envFile   string
	rulesFile string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "itrcalc",
		Short: "Indian income tax calculator comparing the old and new regimes",
		Long: `itrcalc computes income tax for a taxpayer profile under both the old and
the new regime, recommends the cheaper one and explains the computation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "load settings from this .env file")
	root.PersistentFlags().StringVar(&a.rulesFile, "rules", "", "YAML file overriding the built-in tax rules")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newComputeCmd(a),
		newCompareCmd(a),
		newValidateCmd(a),
		newExampleCmd(a),
		newAssetTypesCmd(a),
		newServeCmd(a),
		newDeductionCmd(a),
	)
	return root
}

func (a *app) init() error {
	var envFiles []string
	if a.envFile != "" {
		envFiles = append(envFiles, a.envFile)
	}
	cfg, err := config.LoadAppConfig(envFiles...)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	a.logger = logging.New(level, cfg.LogFormat)

	a.parser = config.NewInputParser()
	rulesFile := a.rulesFile
	if rulesFile == "" {
		rulesFile = cfg.RulesFile
	}
	if rulesFile != "" {
		if _, err := a.parser.LoadRulesFromFile(rulesFile); err != nil {
			return fmt.Errorf("failed to load rules: %w", err)
		}
		a.logger.Debugf("loaded tax rules for AY %s from %s", a.parser.Rules.AssessmentYear, rulesFile)
	}

	a.engine = calculation.NewEngineWithRules(a.parser.Rules)
	a.engine.SetLogger(a.logger)
	return nil
}
