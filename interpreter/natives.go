package interpreter

import (
	"os"
	"time"

	"github.com/loxlang/golox/lox"
	"github.com/loxlang/golox/token"
)

// noopFn is the native function returned by inner when no further ancestor defines the requested method, and the
// body of the noop native itself. Its arity is anyArity so that it can stand in for a call with any argument count.
var noopFn = newNative("noop", anyArity, func(*Interpreter, token.Token, []value) value {
	return nilValue{}
})

func registerNatives(globals *environment) {
	for _, n := range []*nativeFunction{
		newNative("clock", 0, nativeClock),
		newNative("array", 1, nativeArray),
		newNative("len", 1, nativeLen),
		newNative("int", 1, nativeInt),
		newNative("chr", 1, nativeChr),
		newNative("readfile", 1, nativeReadfile),
		newNative("writefile", 2, nativeWritefile),
		newNative("inner", 3, nativeInner),
		noopFn,
	} {
		globals.Define(n.name, n)
	}
}

func nativeClock(*Interpreter, token.Token, []value) value {
	return numberValue(float64(time.Now().UnixNano()) / 1e9)
}

func nativeArray(_ *Interpreter, _ token.Token, args []value) value {
	n, ok := args[0].(numberValue)
	if !ok {
		panic(lox.ExceptionErrorf("array: argument must be a number"))
	}
	size := int(n)
	if size < 0 {
		size = 0
	}
	arr := make(arrayValue, size)
	for i := range arr {
		arr[i] = nilValue{}
	}
	return &arr
}

func nativeLen(_ *Interpreter, _ token.Token, args []value) value {
	switch v := args[0].(type) {
	case stringValue:
		return numberValue(len(v))
	case *arrayValue:
		return numberValue(len(*v))
	default:
		panic(lox.ExceptionErrorf("len: argument must be array or string"))
	}
}

func nativeInt(_ *Interpreter, _ token.Token, args []value) value {
	switch v := args[0].(type) {
	case numberValue:
		return numberValue(float64(int(v)))
	case stringValue:
		if len(v) != 1 {
			panic(lox.ExceptionErrorf("int: argument must be a number or character"))
		}
		return numberValue(float64(v[0]))
	default:
		panic(lox.ExceptionErrorf("int: argument must be a number or character"))
	}
}

func nativeChr(_ *Interpreter, _ token.Token, args []value) value {
	n, ok := args[0].(numberValue)
	if !ok {
		panic(lox.ExceptionErrorf("chr: argument must be a number"))
	}
	return stringValue(rune(int(n)))
}

func nativeReadfile(_ *Interpreter, _ token.Token, args []value) value {
	path, ok := args[0].(stringValue)
	if !ok {
		panic(lox.ExceptionErrorf("readfile: argument must be a string"))
	}
	data, err := os.ReadFile(string(path))
	if err != nil {
		panic(lox.ExceptionErrorf("readfile: file cannot be found"))
	}
	return stringValue(data)
}

func nativeWritefile(_ *Interpreter, _ token.Token, args []value) value {
	path, ok := args[0].(stringValue)
	if !ok {
		panic(lox.ExceptionErrorf("writefile: first argument must be a string"))
	}
	contents, ok := args[1].(stringValue)
	if !ok {
		panic(lox.ExceptionErrorf("writefile: second argument must be a string"))
	}
	if err := os.WriteFile(string(path), []byte(contents), 0o644); err != nil {
		panic(lox.ExceptionErrorf("writefile: invalid character set"))
	}
	return nilValue{}
}

// nativeInner implements explicit ancestor method dispatch for multiply-inherited classes: inner(class, receiver,
// name) looks up name starting at the superclasses of class (never class itself), so that a method can delegate to
// whichever of its parents would otherwise have been shadowed by it. If no ancestor defines name, it returns noop,
// which can be called with any arguments and does nothing.
func nativeInner(interp *Interpreter, _ token.Token, args []value) value {
	class, ok := args[0].(*loxClass)
	if !ok {
		panic(lox.ExceptionErrorf("inner: first argument must be a class"))
	}
	name, ok := args[2].(stringValue)
	if !ok {
		panic(lox.ExceptionErrorf("inner: third argument must be a string"))
	}

	switch receiver := args[1].(type) {
	case *loxInstance:
		if method, ok := findInSuperclasses(class.superclasses, string(name), (*loxClass).findMethod); ok {
			return method.Bind(receiver)
		}
	case *loxClass:
		if method, ok := findInSuperclasses(class.superclasses, string(name), (*loxClass).findClassMethod); ok {
			return method.Bind(receiver)
		}
	default:
		panic(lox.ExceptionErrorf("inner: second argument must be a class or instance"))
	}
	return noopFn
}
