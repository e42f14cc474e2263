/*
Copyright 2020 Google LLC

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

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/store"
)

var cfgFile string
var spotifyClientID string
var spotifyClientSecret string
var databasePath string
var sendgridApiKey string
var fromAddress string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spotify-history-tools",
	Short: "Performs analysis on exported Spotify streaming history",
	Long:  `Import your streaming history export, then run the analysis commands.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.spotify-history-tools.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./spotify-history.db", "Path to the SQLite database")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().StringVar(
		&spotifyClientID, "client_id", "", "Spotify API client id (for track enrichment)")
	viper.BindPFlag("client_id", rootCmd.PersistentFlags().Lookup("client_id"))

	rootCmd.PersistentFlags().StringVar(
		&spotifyClientSecret, "client_secret", "", "Spotify API client secret")
	viper.BindPFlag("client_secret", rootCmd.PersistentFlags().Lookup("client_secret"))

	rootCmd.PersistentFlags().StringVar(&sendgridApiKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", rootCmd.PersistentFlags().Lookup("sendgrid_api_key"))

	rootCmd.PersistentFlags().StringVar(&fromAddress, "from", "", "From email address")
	viper.BindPFlag("from", rootCmd.PersistentFlags().Lookup("from"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Spotify credentials may live in a .env file, like the web player
	// examples use.
	godotenv.Load()

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

		// Search config in home directory with name ".spotify-history-tools" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".spotify-history-tools")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func openStore(dbPath string) (*store.Store, error) {
	st, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("openStore: %w", err)
	}
	return st, nil
}

// openStoreWithData errors when nothing has been imported yet.
func openStoreWithData(dbPath string) (*store.Store, error) {
	st, err := openStore(dbPath)
	if err != nil {
		return nil, err
	}
	tracks, episodes, err := st.Counts()
	if err != nil {
		st.Close()
		return nil, err
	}
	if tracks == 0 && episodes == 0 {
		st.Close()
		return nil, fmt.Errorf("No listening data found - run import first.")
	}
	return st, nil
}

// spotifyClientID and spotifyClientSecret fall back to the SPOTIFY_ID and
// SPOTIFY_SECRET environment variables (.env included).
func spotifyCredentials() (id string, secret string) {
	id = viper.GetString("client_id")
	if id == "" {
		id = os.Getenv("SPOTIFY_ID")
	}
	secret = viper.GetString("client_secret")
	if secret == "" {
		secret = os.Getenv("SPOTIFY_SECRET")
	}
	return id, secret
}
