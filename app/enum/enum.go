// Package enum defines the closed value sets shared across darkmode packages.
package enum

//go:generate go run github.com/go-pkgz/enum@latest -type mode -lower
type mode int

const (
	modeDisabled mode = iota // enum:alias=off
	modeEnabled              // enum:alias=on
)

//go:generate go run github.com/go-pkgz/enum@latest -type disabledPolicy -lower
type disabledPolicy int

const (
	disabledPolicyWriteDisabled disabledPolicy = iota // enum:alias=,write-disabled
	disabledPolicyWriteNull                           // enum:alias=write-null
	disabledPolicyRemoveKey                           // enum:alias=remove-key
)

//go:generate go run github.com/go-pkgz/enum@latest -type dbType -lower
type dbType int

const (
	dbTypeSQLite   dbType = iota // enum:alias=sqlite
	dbTypePostgres               // enum:alias=postgres
)
