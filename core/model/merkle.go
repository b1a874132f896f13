package model

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// Keccak256 returns the hex-encoded keccak256 of data. Used for event topic
// signatures.
func Keccak256(data string) string {
	hasher := sha3.NewLegacyKeccak256()

	hasher.Write([]byte(data))

	hash := hasher.Sum(nil)

	return fmt.Sprintf("%x", hash)
}

// LeafHash is the whitelist leaf: keccak256 over the 20-byte address.
func LeafHash(addr common.Address) common.Hash {
	return crypto.Keccak256Hash(addr.Bytes())
}

// hashPair combines two nodes with the smaller value first. Proofs built
// with any other pair convention will not verify.
func hashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return crypto.Keccak256Hash(a[:], b[:])
}

// VerifyProof recomputes the root from the address leaf and the ordered
// sibling hashes. An empty proof verifies only against a single-leaf root.
func VerifyProof(proof []common.Hash, root common.Hash, addr common.Address) bool {
	computed := LeafHash(addr)
	for _, sibling := range proof {
		computed = hashPair(computed, sibling)
	}
	return computed == root
}

// MerkleTree holds every level of a whitelist tree so proofs can be issued
// for any member. Built off-line; the gate itself only ever sees the root.
type MerkleTree struct {
	levels [][]common.Hash
	index  map[common.Hash]int
}

// BuildTree hashes the addresses into leaves and folds them upward two at a
// time, promoting an odd trailing node unchanged.
func BuildTree(addrs []common.Address) (*MerkleTree, error) {
	if len(addrs) == 0 {
		return nil, fmt.Errorf("%w: empty address set", ErrBadInput)
	}
	leaves := make([]common.Hash, len(addrs))
	index := make(map[common.Hash]int, len(addrs))
	for i, addr := range addrs {
		leaf := LeafHash(addr)
		if _, dup := index[leaf]; dup {
			return nil, fmt.Errorf("%w: duplicate address %s", ErrBadInput, addr.Hex())
		}
		leaves[i] = leaf
		index[leaf] = i
	}

	levels := [][]common.Hash{leaves}
	for len(levels[len(levels)-1]) > 1 {
		prev := levels[len(levels)-1]
		next := make([]common.Hash, 0, (len(prev)+1)/2)
		for i := 0; i < len(prev); i += 2 {
			if i+1 == len(prev) {
				next = append(next, prev[i])
			} else {
				next = append(next, hashPair(prev[i], prev[i+1]))
			}
		}
		levels = append(levels, next)
	}

	return &MerkleTree{levels: levels, index: index}, nil
}

func (t *MerkleTree) Root() common.Hash {
	return t.levels[len(t.levels)-1][0]
}

func (t *MerkleTree) Size() int {
	return len(t.levels[0])
}

// ProofFor returns the sibling path for a member address, leaf level first.
func (t *MerkleTree) ProofFor(addr common.Address) ([]common.Hash, error) {
	idx, ok := t.index[LeafHash(addr)]
	if !ok {
		return nil, fmt.Errorf("%w: %s not in tree", ErrInvalidProof, addr.Hex())
	}
	proof := make([]common.Hash, 0, len(t.levels)-1)
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := idx ^ 1
		if sibling < len(level) {
			proof = append(proof, level[sibling])
		}
		idx /= 2
	}
	return proof, nil
}
