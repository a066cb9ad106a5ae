package main

import (
	"errors"
	"fmt"

	"github.com/penny-vault/pmatrix/cmd"

	"github.com/spf13/viper"
)

func configureViper() {
	// read config file
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath("/etc/pmatrix/")
	viper.AddConfigPath("$HOME/.config/pmatrix")
	viper.AddConfigPath(".")

	err := viper.ReadInConfig() // Find and read the config file
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
}

func main() {
	configureViper()
	cmd.Execute()
}
