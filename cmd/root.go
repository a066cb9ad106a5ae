// Copyright 2021 JD Fergason
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"

	"github.com/penny-vault/pmatrix/common"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cobra.OnInitialize(common.SetupLogging)

	// Logging configuration
	viper.BindEnv("log.level", "PMATRIX_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "PMATRIX_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "PMATRIX_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stderr", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	viper.BindEnv("log.pretty", "PMATRIX_LOG_PRETTY")
	rootCmd.PersistentFlags().Bool("log-pretty", true, "Pretty print log messages")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))

	// Calculation defaults
	viper.BindEnv("calc.frequency", "PMATRIX_FREQUENCY")
	rootCmd.PersistentFlags().String("frequency", "D", "Sampling frequency of the input: Y, M or D")
	viper.BindPFlag("calc.frequency", rootCmd.PersistentFlags().Lookup("frequency"))

	viper.BindEnv("calc.calendar", "PMATRIX_CALENDAR")
	rootCmd.PersistentFlags().String("calendar", "domestic", "Exchange calendar used to count trading days: domestic (CN) or foreign (US)")
	viper.BindPFlag("calc.calendar", rootCmd.PersistentFlags().Lookup("calendar"))

	viper.BindEnv("calc.drop_na", "PMATRIX_DROP_NA")
	rootCmd.PersistentFlags().Bool("drop-na", false, "Drop csv rows that contain empty cells instead of failing")
	viper.BindPFlag("calc.drop_na", rootCmd.PersistentFlags().Lookup("drop-na"))
}

var rootCmd = &cobra.Command{
	Use:     "pmatrix",
	Version: common.Version(),
	Short:   "pmatrix computes portfolio performance statistics",
	Long: `Compute returns, volatility, risk-adjusted ratios and drawdowns from a
date-indexed table of net asset values.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
