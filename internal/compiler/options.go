package compiler

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/goliatone/go-jadn/pkg/diag"
)

// Encoding selects how extracted option maps are written into the model.
type Encoding int

const (
	// EncodingCompat uses options.Encode, the inverse table the JAS
	// translator has always written.
	EncodingCompat Encoding = iota
	// EncodingCanonical uses the decode tables so every option string in the
	// model decodes back to the extracted map.
	EncodingCanonical
)

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/compiler and passed into New.
type Options struct {
	Reporter    diag.Reporter
	Logger      *zap.Logger
	Strict      bool
	Concurrency int
	TypeNames   *TypeNames
	Encoding    Encoding
}

func defaultOptions() Options {
	return Options{
		Reporter:    diag.Discard,
		Logger:      zap.NewNop(),
		Concurrency: runtime.GOMAXPROCS(0),
		TypeNames:   DefaultTypeNames(),
		Encoding:    EncodingCompat,
	}
}
