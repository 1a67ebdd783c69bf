// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/stakepool/thor"
)

// Config is the user customized deployment.
type Config struct {
	Owner    thor.Address `json:"owner" yaml:"owner"`
	Accounts []Account    `json:"accounts" yaml:"accounts"`
}

// Account is an initial token allocation.
type Account struct {
	Address thor.Address     `json:"address" yaml:"address"`
	Balance *HexOrDecimal256 `json:"balance" yaml:"balance"`
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
type HexOrDecimal256 math.HexOrDecimal256

// NewHexOrDecimal256 wraps v.
func NewHexOrDecimal256(v *big.Int) *HexOrDecimal256 {
	return (*HexOrDecimal256)(new(big.Int).Set(v))
}

// Int returns the value as big.Int.
func (i *HexOrDecimal256) Int() *big.Int {
	if i == nil {
		return nil
	}
	return (*big.Int)(i)
}

func (i *HexOrDecimal256) parse(s string) error {
	bigint, ok := math.ParseBig256(s)
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", s)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		return (*big.Int)(i).UnmarshalJSON(input)
	}
	return i.parse(hex)
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	decimal256 := math.HexOrDecimal256(i)
	text, err := decimal256.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalYAML implements the yaml.Unmarshaler interface. Both quoted and bare numbers are accepted.
func (i *HexOrDecimal256) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected integer", node.Line)
	}
	return i.parse(node.Value)
}

// MarshalYAML implements the yaml.Marshaler interface.
func (i HexOrDecimal256) MarshalYAML() (any, error) {
	return (*big.Int)(&i).String(), nil
}

// Validate checks the deployment is well formed.
func (c *Config) Validate() error {
	if c.Owner.IsZero() {
		return errors.New("owner must be set")
	}
	seen := make(map[thor.Address]bool, len(c.Accounts))
	for _, a := range c.Accounts {
		if a.Address.IsZero() {
			return errors.New("account address must not be zero")
		}
		if seen[a.Address] {
			return fmt.Errorf("%s: duplicated account", a.Address)
		}
		seen[a.Address] = true
		if a.Balance == nil {
			return fmt.Errorf("%s: balance must be set", a.Address)
		}
		if a.Balance.Int().Sign() < 1 {
			return fmt.Errorf("%s: balance must be a non-zero integer", a.Address)
		}
	}
	return nil
}

// LoadConfig reads a deployment from path. Files ending in .json are parsed
// as JSON, anything else as YAML.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read deploy config")
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".json") {
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		err = decoder.Decode(&cfg)
	} else {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		err = decoder.Decode(&cfg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode deploy config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, "deploy config")
	}
	return &cfg, nil
}
