package model

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomAddresses(r *rand.Rand, n int) []common.Address {
	seen := make(map[common.Address]bool, n)
	addrs := make([]common.Address, 0, n)
	for len(addrs) < n {
		var a common.Address
		r.Read(a[:])
		if seen[a] {
			continue
		}
		seen[a] = true
		addrs = append(addrs, a)
	}
	return addrs
}

func outsiderAddress(r *rand.Rand, members []common.Address) common.Address {
	seen := make(map[common.Address]bool, len(members))
	for _, m := range members {
		seen[m] = true
	}
	for {
		var a common.Address
		r.Read(a[:])
		if !seen[a] {
			return a
		}
	}
}

func TestVerifyProofRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for _, size := range []int{1, 2, 3, 4, 5, 7, 8, 16, 33, 64, 100, 257, 512, 1024} {
		members := randomAddresses(r, size)
		tree, err := BuildTree(members)
		require.NoError(t, err)
		require.Equal(t, size, tree.Size())

		for _, member := range members {
			proof, err := tree.ProofFor(member)
			require.NoError(t, err)
			assert.True(t, VerifyProof(proof, tree.Root(), member),
				"size %d: member proof must verify", size)
		}

		outsider := outsiderAddress(r, members)
		proof, err := tree.ProofFor(members[r.Intn(size)])
		require.NoError(t, err)
		assert.False(t, VerifyProof(proof, tree.Root(), outsider),
			"size %d: outsider must not verify with a member proof", size)

		if size > 1 {
			assert.False(t, VerifyProof(nil, tree.Root(), members[0]),
				"size %d: empty proof against non-trivial root", size)
		}
	}
}

func TestVerifyProofSingleLeaf(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	member := randomAddresses(r, 1)[0]

	tree, err := BuildTree([]common.Address{member})
	require.NoError(t, err)

	// single-leaf root is the leaf itself, proven by an empty proof
	assert.Equal(t, LeafHash(member), tree.Root())
	assert.True(t, VerifyProof(nil, tree.Root(), member))
	assert.False(t, VerifyProof(nil, tree.Root(), outsiderAddress(r, []common.Address{member})))
}

func TestVerifyProofTampered(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	members := randomAddresses(r, 16)
	tree, err := BuildTree(members)
	require.NoError(t, err)

	proof, err := tree.ProofFor(members[3])
	require.NoError(t, err)
	require.NotEmpty(t, proof)

	proof[0][0] ^= 0xff
	assert.False(t, VerifyProof(proof, tree.Root(), members[3]))
}

func TestHashPairSorted(t *testing.T) {
	a := common.HexToHash("0x01")
	b := common.HexToHash("0x02")
	assert.Equal(t, hashPair(a, b), hashPair(b, a))
}

func TestBuildTreeBadInput(t *testing.T) {
	_, err := BuildTree(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadInput))

	dup := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	_, err = BuildTree([]common.Address{dup, dup})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadInput))
}

func TestProofForNonMember(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	members := randomAddresses(r, 8)
	tree, err := BuildTree(members)
	require.NoError(t, err)

	_, err = tree.ProofFor(outsiderAddress(r, members))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProof))
}
