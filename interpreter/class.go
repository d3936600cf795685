package interpreter

import (
	"fmt"

	"github.com/loxlang/golox/lox"
	"github.com/loxlang/golox/token"
)

// loxClass is a Lox class. Classes may inherit from more than one superclass; methods are resolved by searching the
// class's own methods first, then its superclasses depth-first in declaration order. A method that appears under
// more than one superclass is reached more than once by that search, but only its first occurrence is ever used.
type loxClass struct {
	name         string
	superclasses []*loxClass
	methods      map[string]*loxFunction // instance methods
	classMethods map[string]*loxFunction // methods called on the class itself
	getters      map[string]*loxFunction
}

func newClass(name string, superclasses []*loxClass, methods, classMethods, getters map[string]*loxFunction) *loxClass {
	return &loxClass{
		name:         name,
		superclasses: superclasses,
		methods:      methods,
		classMethods: classMethods,
		getters:      getters,
	}
}

var (
	_ value              = (*loxClass)(nil)
	_ callable           = (*loxClass)(nil)
	_ propertyAccessible = (*loxClass)(nil)
)

func (c *loxClass) String() string { return c.name }
func (c *loxClass) Type() string   { return "class" }

// findMethod searches c and then its superclasses, depth-first and left-to-right, for an instance method named
// name.
func (c *loxClass) findMethod(name string) (*loxFunction, bool) {
	if m, ok := c.methods[name]; ok {
		return m, true
	}
	return findInSuperclasses(c.superclasses, name, (*loxClass).findMethod)
}

// findClassMethod is findMethod's counterpart for methods called on the class itself rather than an instance.
func (c *loxClass) findClassMethod(name string) (*loxFunction, bool) {
	if m, ok := c.classMethods[name]; ok {
		return m, true
	}
	return findInSuperclasses(c.superclasses, name, (*loxClass).findClassMethod)
}

// findGetter searches c and then its superclasses for a getter named name.
func (c *loxClass) findGetter(name string) (*loxFunction, bool) {
	if m, ok := c.getters[name]; ok {
		return m, true
	}
	return findInSuperclasses(c.superclasses, name, (*loxClass).findGetter)
}

func findInSuperclasses(
	superclasses []*loxClass,
	name string,
	find func(*loxClass, string) (*loxFunction, bool),
) (*loxFunction, bool) {
	for _, super := range superclasses {
		if m, ok := find(super, name); ok {
			return m, true
		}
	}
	return nil, false
}

// memberKind distinguishes which tier an instance member resolved from, so that the caller knows how to turn it
// into a value: a getter is invoked immediately, an instance method is bound to the instance, and a class-side
// method is bound to the class.
type memberKind int

const (
	memberNone memberKind = iota
	memberGetter
	memberInstanceMethod
	memberClassMethod
)

// findInstanceMember resolves name for instance property access. At each class visited, the three member tiers are
// checked in order (getter, then instance method, then class-side method) before recursing into its superclasses
// depth-first, left-to-right: a class's own member always wins over anything declared on a superclass, even a
// member in a tier that would otherwise take precedence.
func (c *loxClass) findInstanceMember(name string) (*loxFunction, memberKind) {
	if m, ok := c.getters[name]; ok {
		return m, memberGetter
	}
	if m, ok := c.methods[name]; ok {
		return m, memberInstanceMethod
	}
	if m, ok := c.classMethods[name]; ok {
		return m, memberClassMethod
	}
	for _, super := range c.superclasses {
		if m, kind := super.findInstanceMember(name); kind != memberNone {
			return m, kind
		}
	}
	return nil, memberNone
}

func (c *loxClass) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

func (c *loxClass) Call(interp *Interpreter, callTok token.Token, args []value) value {
	instance := newInstance(c)
	if init, ok := c.findMethod("init"); ok {
		init.Bind(instance).Call(interp, callTok, args)
	}
	return instance
}

// Property implements class-side method access, e.g. Shape.describe(). A getter is only invoked here if it is flagged
// as a class method, which the parser never produces, so Shape.count for an instance getter count is an error.
func (c *loxClass) Property(interp *Interpreter, name token.Token) value {
	if getter, ok := c.findGetter(name.Lexeme); ok && getter.isClassMethod {
		return getter.Bind(c).Call(interp, name, nil)
	}
	if method, ok := c.findClassMethod(name.Lexeme); ok {
		return method.Bind(c)
	}
	panic(lox.RuntimeErrorf(name, "%s class has no property %s", c.name, name.Lexeme))
}

// loxInstance is an instance of a loxClass.
type loxInstance struct {
	class  *loxClass
	fields map[string]value
}

func newInstance(class *loxClass) *loxInstance {
	return &loxInstance{class: class, fields: make(map[string]value)}
}

var (
	_ value              = (*loxInstance)(nil)
	_ propertyAccessible = (*loxInstance)(nil)
	_ propertySettable   = (*loxInstance)(nil)
)

func (i *loxInstance) String() string { return fmt.Sprintf("%s instance", i.class.name) }
func (i *loxInstance) Type() string   { return i.class.name }

// Property implements the instance lookup chain: a field shadows every method tier; below that, findInstanceMember
// resolves class-major (a class's own getter/method/class-method wins over anything of any tier declared on a
// superclass) rather than tier-major (which would let an inherited getter shadow a subclass's own instance method).
func (i *loxInstance) Property(interp *Interpreter, name token.Token) value {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v
	}
	m, kind := i.class.findInstanceMember(name.Lexeme)
	switch kind {
	case memberGetter:
		return m.Bind(i).Call(interp, name, nil)
	case memberInstanceMethod:
		return m.Bind(i)
	case memberClassMethod:
		return m.Bind(i.class)
	default:
		panic(lox.RuntimeErrorf(name, "%s instance has no property %s", i.class.name, name.Lexeme))
	}
}

func (i *loxInstance) SetProperty(_ *Interpreter, name token.Token, v value) value {
	i.fields[name.Lexeme] = v
	return v
}
