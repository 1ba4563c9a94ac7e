package netif

import (
	"grimm.is/pflask/internal/errors"
	"grimm.is/pflask/internal/validation"
)

// MaxNameLen is the longest interface name the kernel accepts.
const MaxNameLen = validation.MaxInterfaceNameLen

// Kind selects how a request is carried out.
type Kind int

const (
	// KindMove moves an existing host interface into the namespace.
	KindMove Kind = iota
	// KindMacvlan creates a macvlan on a host interface and moves it.
	KindMacvlan
	// KindVeth creates a veth pair and moves the peer end.
	KindVeth
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindMacvlan:
		return "macvlan"
	case KindVeth:
		return "veth"
	default:
		return "unknown"
	}
}

// ParseKind maps a kind name to a Kind. The empty string is KindMove.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "move":
		return KindMove, nil
	case "macvlan":
		return KindMacvlan, nil
	case "veth":
		return KindVeth, nil
	default:
		return 0, errors.Errorf(errors.KindValidation, "unknown interface kind %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Request is one interface to hand to the target namespace.
type Request struct {
	Kind Kind `yaml:"kind"`
	// Source is the host interface to move, the macvlan master, or the
	// host-side name of a veth pair.
	Source string `yaml:"source"`
	// Target is the name the interface gets inside the namespace.
	Target string `yaml:"target"`
}

// NewRequest validates and builds a Request.
func NewRequest(kind Kind, source, target string) (Request, error) {
	if err := checkName("source", source); err != nil {
		return Request{}, err
	}
	if err := checkName("target", target); err != nil {
		return Request{}, err
	}
	switch kind {
	case KindMove, KindMacvlan, KindVeth:
	default:
		return Request{}, errors.Errorf(errors.KindValidation, "invalid request: unknown kind %d", int(kind))
	}
	return Request{Kind: kind, Source: source, Target: target}, nil
}

func checkName(field, name string) error {
	if err := validation.ValidateInterfaceName(name); err != nil {
		return errors.Attr(errors.Wrapf(err, errors.KindValidation, "invalid request: bad %s name", field), field, name)
	}
	return nil
}

// Registry holds pending requests in registration order. It is consumed once
// by Drain.
type Registry struct {
	reqs []Request
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register validates and appends a request.
func (r *Registry) Register(kind Kind, source, target string) error {
	req, err := NewRequest(kind, source, target)
	if err != nil {
		return err
	}
	r.reqs = append(r.reqs, req)
	return nil
}

// Add appends an already built request, validating it again.
func (r *Registry) Add(req Request) error {
	return r.Register(req.Kind, req.Source, req.Target)
}

// Len returns the number of pending requests.
func (r *Registry) Len() int {
	return len(r.reqs)
}

// Requests returns a copy of the pending requests.
func (r *Registry) Requests() []Request {
	return append([]Request(nil), r.reqs...)
}

// Drain returns the pending requests and empties the registry.
func (r *Registry) Drain() []Request {
	reqs := r.reqs
	r.reqs = nil
	return reqs
}
