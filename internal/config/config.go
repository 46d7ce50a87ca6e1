package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk CLI configuration shape (YAML).
type Config struct {
	// Optional: load the billing model from a separate JSON document
	// (e.g. examples/models/*.json). Fields set under Model override the
	// loaded document.
	ModelFile string      `yaml:"model_file"`
	Model     TariffModel `yaml:"model"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If model_file is set, load it and merge in any explicit overrides
	// from c.Model.
	if c.ModelFile != "" {
		modelPath := c.ModelFile
		if !filepath.IsAbs(modelPath) {
			// Prefer interpreting relative paths as relative to the config file
			// directory, but fall back to the provided path (relative to cwd)
			// if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), modelPath)
			if _, err := os.Stat(cand); err == nil {
				modelPath = cand
			}
		}
		loaded, err := LoadModel(modelPath)
		if err != nil {
			return nil, err
		}
		c.Model = MergeModel(*loaded, c.Model)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	// Validate the model by converting it to an internal BillingConfig.
	_, err := c.Model.ToBillingConfig()
	return err
}

// MergeModel overlays non-zero fields from override onto base.
// This is used when loading a model file and then applying inline overrides
// from the CLI config or an API request.
func MergeModel(base, override TariffModel) TariffModel {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Currency != "" {
		out.Currency = override.Currency
	}
	if override.TaxRate != 0 {
		out.TaxRate = override.TaxRate
	}
	// Note: false cannot override true here; flip it in the model file if
	// the base sets prices_include_tax.
	if override.PricesIncludeTax {
		out.PricesIncludeTax = true
	}
	if override.FixedFeePerMonth != 0 {
		out.FixedFeePerMonth = override.FixedFeePerMonth
	}
	if override.UsageFeePerKwh != 0 {
		out.UsageFeePerKwh = override.UsageFeePerKwh
	}
	// Tariff lists are replaced wholesale, not merged entry-by-entry.
	if override.PowerTariffs != nil {
		out.PowerTariffs = override.PowerTariffs
	}
	return out
}
