package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"

	"phased-mint-gate/core/model"
	"phased-mint-gate/utils/generics/must"
)

const ledgerViewABIJson = `[{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"type":"function"}]`

var ledgerViewABI = must.Must(abi.JSON(strings.NewReader(ledgerViewABIJson)))

var ErrReadOnly = errors.New("remote ledger is read-only")

// Remote observes a deployed token ledger over RPC. It serves the read half
// of TokenLedger; Mint and Burn always fail because issuance happens on the
// chain, not here.
type Remote struct {
	client   *ethclient.Client
	contract common.Address
}

func NewRemote(rpcURL string, contract common.Address) (*Remote, error) {
	if contract == (common.Address{}) {
		return nil, fmt.Errorf("%w: zero contract address", model.ErrBadToken)
	}
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, err
	}
	return &Remote{client: client, contract: contract}, nil
}

func (r *Remote) Mint(common.Address, uint64) error {
	return ErrReadOnly
}

func (r *Remote) Burn(common.Address, uint64) error {
	return ErrReadOnly
}

func (r *Remote) BalanceOf(addr common.Address) uint64 {
	return r.readUint("balanceOf", addr)
}

func (r *Remote) TotalSupply() uint64 {
	return r.readUint("totalSupply")
}

func (r *Remote) readUint(method string, args ...interface{}) uint64 {
	data, err := ledgerViewABI.Pack(method, args...)
	if err != nil {
		logrus.Errorf("pack %s err: %v", method, err)
		return 0
	}
	out, err := r.client.CallContract(context.Background(), ethereum.CallMsg{
		To:   &r.contract,
		Data: data,
	}, nil)
	if err != nil {
		logrus.Errorf("call %s on %s err: %v", method, r.contract.Hex(), err)
		return 0
	}
	values, err := ledgerViewABI.Unpack(method, out)
	if err != nil || len(values) != 1 {
		logrus.Errorf("unpack %s err: %v", method, err)
		return 0
	}
	value, ok := values[0].(*big.Int)
	if !ok || !value.IsUint64() {
		logrus.Errorf("unexpected %s result %v", method, values[0])
		return 0
	}
	return value.Uint64()
}
