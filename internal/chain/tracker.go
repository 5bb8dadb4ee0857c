// Package chain records student progress on EVM-compatible chains and
// degrades to simulated records whenever no usable provider is configured.
package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/google/uuid"

	"github.com/edulabs-dev/eduagent/internal/config"
	"github.com/edulabs-dev/eduagent/internal/domain"
)

const (
	// ModeSubmitted marks outcomes backed by a mined transaction.
	ModeSubmitted = "submitted"
	// ModeSimulated marks outcomes produced without touching a chain.
	ModeSimulated = "simulated"

	recordGasLimit = 200000

	simulatedMessage = "Progress recorded (simulated - blockchain not configured)"
	submittedMessage = "Progress recorded on blockchain"
)

// Outcome reports how one progress record was persisted.
type Outcome struct {
	Mode            string    `json:"mode"`
	Reason          string    `json:"reason,omitempty"`
	TransactionHash string    `json:"transaction_hash"`
	BlockNumber     uint64    `json:"block_number"`
	ProgressHash    string    `json:"progress_hash"`
	StudentID       string    `json:"student_id"`
	Timestamp       time.Time `json:"timestamp"`
	Message         string    `json:"message"`
}

// Simulated reports whether the outcome never reached a chain.
func (o Outcome) Simulated() bool { return o.Mode == ModeSimulated }

// Tracker writes progress records to an EVM chain. A tracker without a
// client still works: every record degrades to a simulated outcome carrying
// the reason the chain is unavailable.
type Tracker struct {
	client      *ethclient.Client
	chainID     *big.Int
	key         *ecdsa.PrivateKey
	from        common.Address
	contract    common.Address
	hasContract bool
	reason      string
	logger      *slog.Logger
}

// NewTracker connects to the configured provider. Connection or key errors
// never fail construction; they put the tracker in simulated mode.
func NewTracker(ctx context.Context, cfg config.ChainConfig, logger *slog.Logger) *Tracker {
	t := &Tracker{logger: logger}

	if cfg.ProviderURL == "" || cfg.PrivateKey == "" {
		t.reason = "blockchain not configured"
		logger.Info("blockchain tracking disabled", "reason", t.reason)
		return t
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		t.reason = fmt.Sprintf("invalid private key: %v", err)
		logger.Warn("blockchain tracking disabled", "reason", t.reason)
		return t
	}

	client, err := ethclient.DialContext(ctx, cfg.ProviderURL)
	if err != nil {
		t.reason = fmt.Sprintf("provider dial failed: %v", err)
		logger.Warn("blockchain tracking disabled", "reason", t.reason)
		return t
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		t.reason = fmt.Sprintf("provider unreachable: %v", err)
		logger.Warn("blockchain tracking disabled", "reason", t.reason)
		return t
	}

	t.client = client
	t.chainID = chainID
	t.key = key
	t.from = crypto.PubkeyToAddress(key.PublicKey)

	if cfg.ContractAddress != "" {
		if common.IsHexAddress(cfg.ContractAddress) {
			t.contract = common.HexToAddress(cfg.ContractAddress)
			t.hasContract = true
		} else {
			logger.Warn("ignoring malformed contract address", "address", cfg.ContractAddress)
		}
	}

	logger.Info("connected to blockchain",
		"chain_id", chainID.String(),
		"account", t.from.Hex(),
	)
	return t
}

// Mode returns the mode every new record will take.
func (t *Tracker) Mode() string {
	if t.client == nil {
		return ModeSimulated
	}
	return ModeSubmitted
}

// Close releases the provider connection.
func (t *Tracker) Close() {
	if t.client != nil {
		t.client.Close()
	}
}

// Record persists one progress record. Submission failures downgrade to a
// simulated outcome instead of surfacing an error; tutoring never blocks on
// the chain.
func (t *Tracker) Record(ctx context.Context, rec domain.ProgressRecord) Outcome {
	hash := Hash(rec)
	if t.client == nil {
		return t.simulated(rec, hash, t.reason)
	}

	outcome, err := t.submit(ctx, rec, hash)
	if err != nil {
		t.logger.Warn("blockchain submission failed, recording simulated outcome",
			"student_id", rec.StudentID,
			"error", err,
		)
		return t.simulated(rec, hash, err.Error())
	}
	return outcome
}

func (t *Tracker) submit(ctx context.Context, rec domain.ProgressRecord, hash string) (Outcome, error) {
	nonce, err := t.client.PendingNonceAt(ctx, t.from)
	if err != nil {
		return Outcome{}, fmt.Errorf("fetch nonce: %w", err)
	}
	gasPrice, err := t.client.SuggestGasPrice(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("suggest gas price: %w", err)
	}

	// Without a progress contract the record is sent to our own address;
	// the payload still lands on chain.
	to := t.from
	if t.hasContract {
		to = t.contract
	}

	payload := []byte(fmt.Sprintf("%s:%s:%d", rec.StudentID, hash, rec.QuestionsAnswered))
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    big.NewInt(0),
		Gas:      recordGasLimit,
		GasPrice: gasPrice,
		Data:     payload,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(t.chainID), t.key)
	if err != nil {
		return Outcome{}, fmt.Errorf("sign transaction: %w", err)
	}
	if err := t.client.SendTransaction(ctx, signed); err != nil {
		return Outcome{}, fmt.Errorf("send transaction: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, t.client, signed)
	if err != nil {
		return Outcome{}, fmt.Errorf("wait for receipt: %w", err)
	}

	return Outcome{
		Mode:            ModeSubmitted,
		TransactionHash: signed.Hash().Hex(),
		BlockNumber:     receipt.BlockNumber.Uint64(),
		ProgressHash:    hash,
		StudentID:       rec.StudentID,
		Timestamp:       rec.Timestamp,
		Message:         submittedMessage,
	}, nil
}

func (t *Tracker) simulated(rec domain.ProgressRecord, hash, reason string) Outcome {
	return Outcome{
		Mode:            ModeSimulated,
		Reason:          reason,
		TransactionHash: "0x" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		BlockNumber:     0,
		ProgressHash:    hash,
		StudentID:       rec.StudentID,
		Timestamp:       rec.Timestamp,
		Message:         simulatedMessage,
	}
}

// VerifyProgress reports whether a progress record is present on chain.
// Contract queries are not wired up; records are trusted as written.
func (t *Tracker) VerifyProgress(studentID, progressHash string) bool {
	return true
}
