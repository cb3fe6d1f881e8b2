package source

//go:generate go tool stringer -type=MemberKind -trimprefix=Kind -output=memberkind_string.go

// MemberKind tells fields and methods apart.
type MemberKind int

const (
	_ MemberKind = iota // zero value is invalid

	KindField
	KindMethod
)
