package outcome

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cipherplay/cipherrps/internal/fhe/enclave"
	"github.com/cipherplay/cipherrps/internal/model"
	"github.com/cipherplay/cipherrps/internal/testutil"
)

// truthTable is the complete outcome protocol over all 9 move pairs
var truthTable = []struct {
	name    string
	move1   model.Move
	move2   model.Move
	raw     uint64
	outcome model.Outcome
}{
	{"rock vs rock", model.MoveRock, model.MoveRock, 3, model.OutcomeTie},
	{"paper vs paper", model.MovePaper, model.MovePaper, 3, model.OutcomeTie},
	{"scissors vs scissors", model.MoveScissors, model.MoveScissors, 3, model.OutcomeTie},
	{"rock vs paper", model.MoveRock, model.MovePaper, 2, model.OutcomePlayer2Wins},
	{"rock vs scissors", model.MoveRock, model.MoveScissors, 1, model.OutcomePlayer1Wins},
	{"paper vs rock", model.MovePaper, model.MoveRock, 4, model.OutcomePlayer1Wins},
	{"paper vs scissors", model.MovePaper, model.MoveScissors, 2, model.OutcomePlayer2Wins},
	{"scissors vs rock", model.MoveScissors, model.MoveRock, 5, model.OutcomePlayer2Wins},
	{"scissors vs paper", model.MoveScissors, model.MovePaper, 1, model.OutcomePlayer1Wins},
}

func TestDecodeTruthTable(t *testing.T) {
	for _, tc := range truthTable {
		t.Run(tc.name, func(t *testing.T) {
			raw := uint64(tc.move1) + 3 - uint64(tc.move2)
			if raw != tc.raw {
				t.Fatalf("raw = %d, want %d", raw, tc.raw)
			}
			if got := Decode(raw); got != tc.outcome {
				t.Fatalf("Decode(%d) = %v, want %v", raw, got, tc.outcome)
			}
		})
	}
}

type EncoderSuite struct {
	suite.Suite
	scheme  *enclave.Scheme
	encoder *Encoder
	ctx     context.Context
}

func TestEncoderSuite(t *testing.T) {
	suite.Run(t, new(EncoderSuite))
}

func (s *EncoderSuite) SetupTest() {
	scheme, err := enclave.New()
	s.Require().NoError(err)
	s.scheme = scheme
	s.encoder = New(scheme, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *EncoderSuite) TestComputeMatchesTruthTable() {
	for _, tc := range truthTable {
		move1, err := s.scheme.EncryptConstant(s.ctx, uint64(tc.move1))
		s.Require().NoError(err)
		move2, err := s.scheme.EncryptConstant(s.ctx, uint64(tc.move2))
		s.Require().NoError(err)

		result, err := s.encoder.Compute(s.ctx, move1, move2)
		s.Require().NoError(err, tc.name)

		s.Require().NoError(s.scheme.GrantDecrypt(s.ctx, result, "player-1"))
		raw, err := s.scheme.Decrypt(s.ctx, result, "player-1")
		s.Require().NoError(err, tc.name)

		s.Equal(tc.raw, raw, tc.name)
		s.Equal(tc.outcome, Decode(raw), tc.name)
	}
}

func (s *EncoderSuite) TestComputeResultStaysInRange() {
	for m1 := uint64(1); m1 <= 3; m1++ {
		for m2 := uint64(1); m2 <= 3; m2++ {
			move1, err := s.scheme.EncryptConstant(s.ctx, m1)
			s.Require().NoError(err)
			move2, err := s.scheme.EncryptConstant(s.ctx, m2)
			s.Require().NoError(err)

			result, err := s.encoder.Compute(s.ctx, move1, move2)
			s.Require().NoError(err)

			s.Require().NoError(s.scheme.GrantDecrypt(s.ctx, result, "auditor"))
			raw, err := s.scheme.Decrypt(s.ctx, result, "auditor")
			s.Require().NoError(err)

			s.GreaterOrEqual(raw, uint64(1))
			s.LessOrEqual(raw, uint64(5))
		}
	}
}
