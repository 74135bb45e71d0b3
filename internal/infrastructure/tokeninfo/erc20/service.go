package erc20

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

const erc20ABI = `[
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"type":"function"}
]`

var (
	// ErrMissingEndpoint is returned when no RPC endpoint is configured for
	// the requested chain.
	ErrMissingEndpoint = errors.New("no rpc endpoint for chain")
	// ErrNotAContract ...
	ErrNotAContract = errors.New("address does not host an erc20 contract")
)

// ContractCaller is the subset of ethclient.Client used to query the token
// contracts.
type ContractCaller interface {
	CallContract(
		ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int,
	) ([]byte, error)
}

// Service reads token metadata directly from the contract through the
// JSON-RPC endpoint of each EVM chain. It implements
// ports.TokenInfoProvider.
type Service struct {
	parsedABI abi.ABI
	endpoints map[string]string

	lock    *sync.Mutex
	callers map[string]ContractCaller
}

// NewService returns a service for the given chain -> RPC url map.
func NewService(endpoints map[string]string) (*Service, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, err
	}
	eps := make(map[string]string)
	for chain, url := range endpoints {
		eps[strings.ToLower(chain)] = url
	}
	return &Service{
		parsedABI: parsed,
		endpoints: eps,
		lock:      &sync.Mutex{},
		callers:   make(map[string]ContractCaller),
	}, nil
}

// NewServiceWithCallers returns a service using the given callers instead
// of dialing RPC endpoints.
func NewServiceWithCallers(callers map[string]ContractCaller) (*Service, error) {
	svc, err := NewService(nil)
	if err != nil {
		return nil, err
	}
	for chain, caller := range callers {
		svc.callers[strings.ToLower(chain)] = caller
	}
	return svc, nil
}

func (s *Service) GetTokenInfo(
	ctx context.Context, chain, _, address string,
) (*domain.Token, error) {
	if !common.IsHexAddress(address) {
		return nil, domain.ErrInvalidTokenAddress
	}
	chain = strings.ToLower(chain)
	caller, err := s.caller(ctx, chain)
	if err != nil {
		return nil, err
	}

	contract := common.HexToAddress(address)
	var name, symbol string
	var decimals uint8
	if err := s.call(ctx, caller, contract, "name", &name); err != nil {
		return nil, err
	}
	if err := s.call(ctx, caller, contract, "symbol", &symbol); err != nil {
		return nil, err
	}
	if err := s.call(ctx, caller, contract, "decimals", &decimals); err != nil {
		return nil, err
	}

	return &domain.Token{
		Symbol:   symbol,
		Name:     name,
		Decimals: int(decimals),
		Address:  strings.ToLower(address),
		Chain:    chain,
	}, nil
}

func (s *Service) caller(ctx context.Context, chain string) (ContractCaller, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if c, ok := s.callers[chain]; ok {
		return c, nil
	}
	url, ok := s.endpoints[chain]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrMissingEndpoint, chain)
	}
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	s.callers[chain] = client
	return client, nil
}

func (s *Service) call(
	ctx context.Context, caller ContractCaller, contract common.Address,
	method string, out interface{},
) error {
	data, err := s.parsedABI.Pack(method)
	if err != nil {
		return err
	}
	res, err := caller.CallContract(
		ctx, ethereum.CallMsg{To: &contract, Data: data}, nil,
	)
	if err != nil {
		return err
	}
	if len(res) == 0 {
		return ErrNotAContract
	}
	values, err := s.parsedABI.Unpack(method, res)
	if err != nil {
		return err
	}
	if len(values) != 1 {
		return ErrNotAContract
	}
	switch v := out.(type) {
	case *string:
		str, ok := values[0].(string)
		if !ok {
			return ErrNotAContract
		}
		*v = str
	case *uint8:
		n, ok := values[0].(uint8)
		if !ok {
			return ErrNotAContract
		}
		*v = n
	}
	return nil
}
