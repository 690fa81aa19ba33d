package shell

import (
	"errors"
	"fmt"
	"strings"
)

// Func is the body of a command.
type Func func(c *Ctx) Status

// Command is one node of the command tree. A command without Fn is a
// grouping node for its children.
type Command struct {
	Name  string // comma-separated aliases, the first is the primary name
	Usage string // overrides the signature derived from Args in help
	Short string
	Long  string
	Args  []Arg
	Fn    Func

	parent   *Command
	children []*Command
	linked   bool
}

// Primary returns the first alias.
func (c *Command) Primary() string {
	if i := strings.IndexByte(c.Name, ','); i >= 0 {
		return c.Name[:i]
	}
	return c.Name
}

func (c *Command) Parent() *Command     { return c.parent }
func (c *Command) Children() []*Command { return c.children }

// Path returns the dotted path of primary names from the root.
func (c *Command) Path() string {
	if c.parent == nil {
		return c.Primary()
	}
	return c.parent.Path() + "." + c.Primary()
}

// Child returns the direct child matching name.
func (c *Command) Child(name string) *Command {
	return findIn(c.children, name)
}

// Signature returns Usage or the positional signature.
func (c *Command) Signature() string {
	if c.Usage != "" {
		return c.Usage
	}
	return Signature(c.Args)
}

// MatchName reports whether token equals one of the comma-separated names.
// An empty token never matches.
func MatchName(names, token string) bool {
	if token == "" {
		return false
	}
	for names != "" {
		name := names
		if i := strings.IndexByte(names, ','); i >= 0 {
			name, names = names[:i], names[i+1:]
		} else {
			names = ""
		}
		if name == token {
			return true
		}
	}
	return false
}

func eachAlias(names string, fn func(alias string) bool) {
	for _, a := range strings.Split(names, ",") {
		if a == "" {
			continue
		}
		if !fn(a) {
			return
		}
	}
}

func findIn(list []*Command, name string) *Command {
	for _, c := range list {
		if MatchName(c.Name, name) {
			return c
		}
	}
	return nil
}

// List names a top-level command list.
type List uint8

const (
	ListBase List = iota
	ListGeneral
	listCount
)

func (l List) String() string {
	switch l {
	case ListBase:
		return "base"
	case ListGeneral:
		return "general"
	}
	return "unknown"
}

var (
	ErrNilCommand    = errors.New("nil command")
	ErrEmptyName     = errors.New("empty command name")
	ErrDuplicateName = errors.New("duplicate command name")
	ErrLinked        = errors.New("command already registered")
	ErrBadList       = errors.New("unknown command list")
)

// Registry holds the top-level command lists. Registration happens at
// startup; lookups afterwards only read and are safe for concurrent use.
type Registry struct {
	lists [listCount][]*Command
}

func NewRegistry() *Registry {
	return &Registry{}
}

func checkNew(siblings []*Command, cmd *Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if cmd.linked {
		return fmt.Errorf("shell registry: %q: %w", cmd.Name, ErrLinked)
	}
	aliases := 0
	var err error
	eachAlias(cmd.Name, func(alias string) bool {
		aliases++
		if findIn(siblings, alias) != nil {
			err = fmt.Errorf("shell registry: %q: %w", alias, ErrDuplicateName)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	if aliases == 0 {
		return fmt.Errorf("shell registry: %q: %w", cmd.Name, ErrEmptyName)
	}
	return nil
}

// Register appends cmd to a top-level list. Aliases must be unique across
// all top-level lists so resolution order never hides a command.
func (r *Registry) Register(list List, cmd *Command) error {
	if list >= listCount {
		return fmt.Errorf("shell registry: list %d: %w", list, ErrBadList)
	}
	for l := List(0); l < listCount; l++ {
		if err := checkNew(r.lists[l], cmd); err != nil {
			return err
		}
	}
	cmd.linked = true
	r.lists[list] = append(r.lists[list], cmd)
	return nil
}

// RegisterChild links child under parent.
func (r *Registry) RegisterChild(parent, child *Command) error {
	if parent == nil {
		return ErrNilCommand
	}
	if err := checkNew(parent.children, child); err != nil {
		return err
	}
	child.linked = true
	child.parent = parent
	parent.children = append(parent.children, child)
	return nil
}

// Commands returns the commands of one list in registration order.
func (r *Registry) Commands(list List) []*Command {
	if list >= listCount {
		return nil
	}
	return r.lists[list]
}

// Find returns the command in list matching name.
func (r *Registry) Find(list List, name string) *Command {
	if list >= listCount {
		return nil
	}
	return findIn(r.lists[list], name)
}

// Lookup searches every list in resolution order.
func (r *Registry) Lookup(name string) *Command {
	for l := List(0); l < listCount; l++ {
		if c := findIn(r.lists[l], name); c != nil {
			return c
		}
	}
	return nil
}

// Resolve finds the command named by toks[0] and descends into children for
// as long as the following tokens name a child. It returns the deepest
// command and the tokens left over as its arguments, or nil when toks[0]
// names no top-level command.
func (r *Registry) Resolve(toks []string) (*Command, []string) {
	if len(toks) == 0 {
		return nil, nil
	}
	cmd := r.Lookup(toks[0])
	if cmd == nil {
		return nil, toks
	}
	rest := toks[1:]
	for len(rest) > 0 {
		child := cmd.Child(rest[0])
		if child == nil {
			break
		}
		cmd = child
		rest = rest[1:]
	}
	return cmd, rest
}
