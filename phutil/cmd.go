/*
Copyright © 2024 the phcalc authors.
This file is part of phcalc.

phcalc is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

phcalc is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with phcalc.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package phutil contains the command-line interface for phcalc.
package phutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/phcalc"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to phcalc.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel specifies the level of log messages to print:
              one of debug, info, warning, or error.`,
			defaultVal: "warning",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Solvent.PKi",
			usage: `
              Solvent.PKi is the negative decimal logarithm of the
              solvent's autoionization constant.`,
			defaultVal: 14.0,
			flagsets:   []*pflag.FlagSet{solveCmd.Flags(), titrateCmd.Flags()},
		},
		{
			name: "Solvent.MinPH",
			usage: `
              Solvent.MinPH is the lowest pH that can be returned.`,
			defaultVal: -2.0,
			flagsets:   []*pflag.FlagSet{solveCmd.Flags(), titrateCmd.Flags()},
		},
		{
			name: "Solvent.MaxPH",
			usage: `
              Solvent.MaxPH is the highest pH that can be returned.`,
			defaultVal: 16.0,
			flagsets:   []*pflag.FlagSet{solveCmd.Flags(), titrateCmd.Flags()},
		},
		{
			name: "Tolerance",
			usage: `
              Tolerance is the width of the pH bracket at which the
              bisection search stops.`,
			defaultVal: phcalc.DefaultTolerance,
			flagsets:   []*pflag.FlagSet{solveCmd.Flags(), titrateCmd.Flags()},
		},
		{
			name: "MaxIterations",
			usage: `
              MaxIterations is the maximum number of bisection steps.`,
			defaultVal: phcalc.DefaultMaxIterations,
			flagsets:   []*pflag.FlagSet{solveCmd.Flags(), titrateCmd.Flags()},
		},
		{
			name: "Split",
			usage: `
              Split specifies whether to search the acidic and basic
              halves of the pH range concurrently.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{solveCmd.Flags(), titrateCmd.Flags()},
		},
		{
			name: "SolutionFile",
			usage: `
              SolutionFile is the path to a TOML file describing the
              solvent and the dissolved species.`,
			shorthand:  "f",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{solveCmd.Flags(), titrateCmd.Flags()},
		},
		{
			name: "fractions",
			usage: `
              fractions specifies whether to print the fraction of each
              species in each protonation state at the calculated pH.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{solveCmd.Flags()},
		},
		{
			name: "Titrant",
			usage: `
              Titrant specifies the titrant solution, in the same format
              as the species arguments.`,
			shorthand:  "t",
			defaultVal: "sodium hydroxide=0.1",
			flagsets:   []*pflag.FlagSet{titrateCmd.Flags()},
		},
		{
			name: "AnalyteVolume",
			usage: `
              AnalyteVolume is the volume of the solution being titrated.`,
			defaultVal: 25.0,
			flagsets:   []*pflag.FlagSet{titrateCmd.Flags()},
		},
		{
			name: "TitrantMaxVolume",
			usage: `
              TitrantMaxVolume is the largest volume of titrant to add,
              in the same units as AnalyteVolume.`,
			defaultVal: 50.0,
			flagsets:   []*pflag.FlagSet{titrateCmd.Flags()},
		},
		{
			name: "Points",
			usage: `
              Points is the number of points on the titration curve.`,
			defaultVal: 51,
			flagsets:   []*pflag.FlagSet{titrateCmd.Flags()},
		},
		{
			name: "PlotFile",
			usage: `
              PlotFile is the path of an image file to plot the titration
              curve to. The format is determined by the file extension
              (for example .png or .svg). No plot is created if empty.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{titrateCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("PHCALC")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	// species can be set in a configuration file or an environment variable
	// in addition to the command-line arguments.
	Cfg.SetDefault("species", []string{})

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
			case int:
				set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(solveCmd)
	Root.AddCommand(titrateCmd)
	Root.AddCommand(reagentsCmd)
}

// setConfig reads the configuration file, if any, and sets the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("phutil: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("phutil: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "phcalc",
	Short: "An equilibrium pH calculator.",
	Long: `phcalc calculates the equilibrium pH of aqueous mixtures of acids and bases
by solving the charge balance of the solution.

Species are specified as arguments in one of the formats

    acid:<concentration>:<pKa>[,<pKa>...][:<name>]
    base:<concentration>:<pKa>[,<pKa>...][:<name>]
    <reagent>=<concentration>

where concentrations are in mol/L, the pKa values of a base are those of its
conjugate acid, and <reagent> is one of the names listed by 'phcalc reagents'.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'PHCALC_var' where 'var' is the
name of the variable to be set, with '.' replaced by '_'.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

// versionCmd prints the version number.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of phcalc.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "phcalc v%s\n", phcalc.Version)
	},
	DisableAutoGenTag: true,
}

var solveCmd = &cobra.Command{
	Use:   "solve [species...]",
	Short: "Calculate the pH of a solution.",
	Long: `solve calculates the equilibrium pH of the solution made up of the species
given as arguments, in the 'species' configuration variable, and in the
solution file (--SolutionFile), if any.`,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		solution, solvent, err := loadSolution(args)
		if err != nil {
			return err
		}
		solver, err := newSolver(cmd.Name())
		if err != nil {
			return err
		}
		return Solve(cmd.OutOrStdout(), solution, solvent, solver, Cfg.GetBool("fractions"))
	},
}

var titrateCmd = &cobra.Command{
	Use:   "titrate [species...]",
	Short: "Calculate a titration curve.",
	Long: `titrate calculates the pH of the analyte solution, made up of the species
given as arguments, in the 'species' configuration variable, and in the
solution file (--SolutionFile), as increasing volumes of the titrant solution
(--Titrant) are added to it. The equivalence point is estimated as the point
where the pH changes most steeply.`,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		analyte, solvent, err := loadSolution(args)
		if err != nil {
			return err
		}
		titrant, err := ParseSpecies(Cfg.GetString("Titrant"))
		if err != nil {
			return err
		}
		solver, err := newSolver(cmd.Name())
		if err != nil {
			return err
		}
		t := &phcalc.Titration{
			Analyte: phcalc.Stock{Volume: Cfg.GetFloat64("AnalyteVolume"), Species: analyte},
			Titrant: titrant,
			Solvent: solvent,
			Solver:  solver,
		}
		volumes := phcalc.TitrantVolumes(Cfg.GetFloat64("TitrantMaxVolume"), Cfg.GetInt("Points"))
		return Titrate(cmd.OutOrStdout(), t, volumes, Cfg.GetString("PlotFile"))
	},
}

var reagentsCmd = &cobra.Command{
	Use:   "reagents",
	Short: "List the available reagents.",
	Long: `reagents lists the reagents that can be used in species specifications,
together with their dissociation constants.`,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return ListReagents(cmd.OutOrStdout())
	},
}
