/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/tesnet/utils"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tesnet",
	Short: "Export Triwaco grids as GeoJSON triangulations and dual (Voronoi) cells",
	Long: `Reads a triangle mesh (Triwaco tesnet .teo, SU2 .su2 or Gambit .neu), normalizes the
element orientation, builds node incidence and element adjacency and writes the
elements and the dual cell of every node as GeoJSON feature collections.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tesnet.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".tesnet" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".tesnet")
	}
	viper.SetEnvPrefix("tesnet")
	viper.AutomaticEnv() // read in environment variables that match

	if _, err := utils.InitLogger(viper.GetBool("verbose")); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		utils.Logger().Infow("using config file", "file", viper.ConfigFileUsed())
	}
}
