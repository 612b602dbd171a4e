package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DevNF/nfplugboleto/internal/domain"
	"github.com/DevNF/nfplugboleto/internal/gateway"
	"github.com/DevNF/nfplugboleto/internal/usecase"
)

// buildService wires gateway and usecase from the resolved
// configuration, the same manual dependency injection the commands all
// share.
func buildService(cmd *cobra.Command) (*usecase.BoletoService, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	transport, err := gateway.NewPlugBoleto(cfg)
	if err != nil {
		return nil, err
	}
	return usecase.NewBoletoService(transport), nil
}

// loadConfig resolves credentials from the optional YAML config file
// and the PLUGBOLETO_* environment variables, env taking precedence.
func loadConfig(cmd *cobra.Command) (gateway.Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PLUGBOLETO")
	v.AutomaticEnv()
	v.SetDefault("sandbox", true)
	v.SetDefault("timeout", "60s")

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return gateway.Config{}, fmt.Errorf("could not read config file %s: %w", path, err)
		}
	}

	timeout, err := time.ParseDuration(v.GetString("timeout"))
	if err != nil {
		return gateway.Config{}, fmt.Errorf("invalid timeout %q: %w", v.GetString("timeout"), err)
	}

	return gateway.Config{
		SoftwareHouseCNPJ:  v.GetString("cnpj_sh"),
		SoftwareHouseToken: v.GetString("token_sh"),
		AssignorCNPJ:       v.GetString("cnpj_cedente"),
		Sandbox:            v.GetBool("sandbox"),
		Timeout:            timeout,
	}, nil
}

// readTitles loads a title batch from a JSON file and assigns a fresh
// integration identifier to every title that does not carry one.
func readTitles(path string) ([]domain.Title, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read titles file %s: %w", path, err)
	}
	var titles []domain.Title
	if err := json.Unmarshal(content, &titles); err != nil {
		return nil, fmt.Errorf("could not parse titles file %s: %w", path, err)
	}
	for i := range titles {
		if titles[i].IntegrationID == "" {
			titles[i].IntegrationID = uuid.NewString()
		}
	}
	return titles, nil
}
