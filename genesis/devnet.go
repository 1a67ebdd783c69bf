// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vechain/stakepool/thor"
)

// DevAccount is a well known account of the dev deployment.
type DevAccount struct {
	Address thor.Address
}

// keys of the dev accounts, never use them outside a local setup
var devKeys = []string{
	"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
	"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
	"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
	"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
	"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
}

// DevAccounts returns the dev accounts. The first one owns the deployment.
var DevAccounts = sync.OnceValue(func() []DevAccount {
	accs := make([]DevAccount, 0, len(devKeys))
	for _, key := range devKeys {
		pk, err := crypto.HexToECDSA(key)
		if err != nil {
			panic(err)
		}
		accs = append(accs, DevAccount{thor.Address(crypto.PubkeyToAddress(pk.PublicKey))})
	}
	return accs
})

// DevConfig funds the owner and the first user with 1000 tokens each.
func DevConfig() *Config {
	accs := DevAccounts()
	funds := new(big.Int).Mul(big.NewInt(1000), thor.TokenUnit)
	return &Config{
		Owner: accs[0].Address,
		Accounts: []Account{
			{Address: accs[0].Address, Balance: NewHexOrDecimal256(funds)},
			{Address: accs[1].Address, Balance: NewHexOrDecimal256(funds)},
		},
	}
}
