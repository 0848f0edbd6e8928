package fixture

import "typegen/pkg/hostapi"

func pos(line int) hostapi.Position { return hostapi.Position{Line: line, Column: 1} }

// SimpleAlias builds `type A = string;` in "alias.ts", the smallest possible
// reflected unit.
func SimpleAlias() (*Host, *hostapi.SourceFile) {
	alias := &hostapi.TypeAliasDecl{
		At:   pos(1),
		Name: "A",
		Type: &hostapi.KeywordType{At: pos(1), Keyword: hostapi.KeywordString},
	}
	sf := &hostapi.SourceFile{FileName: "alias.ts", Statements: []hostapi.Node{alias}}
	return NewHost().AddFile(sf), sf
}

// UnionAlias builds `type A = string | number;` in "union.ts".
func UnionAlias() (*Host, *hostapi.SourceFile) {
	alias := &hostapi.TypeAliasDecl{
		At:   pos(1),
		Name: "A",
		Type: &hostapi.UnionType{
			At: pos(1),
			Members: []hostapi.TypeNode{
				&hostapi.KeywordType{At: pos(1), Keyword: hostapi.KeywordString},
				&hostapi.KeywordType{At: pos(1), Keyword: hostapi.KeywordNumber},
			},
		},
	}
	sf := &hostapi.SourceFile{FileName: "union.ts", Statements: []hostapi.Node{alias}}
	return NewHost().AddFile(sf), sf
}

// GenericBoxInterface builds `interface Box<T> { v: T; }` in "box.ts".
func GenericBoxInterface() (*Host, *hostapi.SourceFile) {
	tparam := &hostapi.TypeParameter{At: pos(1), Name: "T"}
	iface := &hostapi.InterfaceDecl{
		At:             pos(1),
		Name:           "Box",
		TypeParameters: []*hostapi.TypeParameter{tparam},
		Members: []hostapi.Member{
			&hostapi.PropertySignature{
				At:   pos(1),
				Name: "v",
				Type: &hostapi.TypeReference{At: pos(1), Name: "T"},
			},
		},
	}
	sf := &hostapi.SourceFile{FileName: "box.ts", Statements: []hostapi.Node{iface}}
	return NewHost().AddFile(sf), sf
}

// TitledClass builds `class M { title: string; }` in "model.ts".
func TitledClass() (*Host, *hostapi.SourceFile) {
	class := &hostapi.ClassDecl{
		At:   pos(1),
		Name: "M",
		Members: []hostapi.Member{
			&hostapi.Property{
				At:   pos(1),
				Name: "title",
				Type: &hostapi.KeywordType{At: pos(1), Keyword: hostapi.KeywordString},
			},
		},
	}
	sf := &hostapi.SourceFile{FileName: "model.ts", Statements: []hostapi.Node{class}}
	return NewHost().AddFile(sf), sf
}

// MappedPartial builds `type Partial<T> = { [P in keyof T]?: T[P] };` in
// "partial.ts", the mapped-type coroutine scenario.
func MappedPartial() (*Host, *hostapi.SourceFile) {
	tparam := &hostapi.TypeParameter{At: pos(1), Name: "T"}
	tref := &hostapi.TypeReference{At: pos(1), Name: "T"}
	alias := &hostapi.TypeAliasDecl{
		At:             pos(1),
		Name:           "Partial",
		TypeParameters: []*hostapi.TypeParameter{tparam},
		Type: &hostapi.MappedType{
			At:         pos(1),
			ParamName:  "P",
			Constraint: &hostapi.KeyOfType{At: pos(1), Operand: tref},
			ValueType: &hostapi.IndexedAccessType{
				At:     pos(1),
				Object: tref,
				Index:  &hostapi.TypeReference{At: pos(1), Name: "P"},
			},
			OptionalMod: hostapi.ModifierAdd,
		},
	}
	sf := &hostapi.SourceFile{FileName: "partial.ts", Statements: []hostapi.Node{alias}}
	return NewHost().AddFile(sf), sf
}

// ReceiveTypeFunction builds:
//
//	function f<T>(x: ReceiveType<T>) {}
//	f<string>();
//
// in "receive.ts": the rewriter's auto-type-argument injection scenario.
// The call expression carries an explicit string type argument so the
// rewriter can demonstrate substituting T before emission.
func ReceiveTypeFunction() (*Host, *hostapi.SourceFile) {
	tparam := &hostapi.TypeParameter{At: pos(1), Name: "T"}
	fn := &hostapi.FunctionDecl{
		At:             pos(1),
		Name:           "f",
		TypeParameters: []*hostapi.TypeParameter{tparam},
		Parameters: []*hostapi.Parameter{
			{
				At:   pos(1),
				Name: "x",
				Type: &hostapi.TypeReference{
					At:            pos(1),
					Name:          "ReceiveType",
					TypeArguments: []hostapi.TypeNode{&hostapi.TypeReference{At: pos(1), Name: "T"}},
				},
			},
		},
	}
	call := &hostapi.CallExpression{
		At:         pos(2),
		CalleeName: "f",
		TypeArguments: []hostapi.TypeNode{
			&hostapi.KeywordType{At: pos(2), Keyword: hostapi.KeywordString},
		},
	}
	sf := &hostapi.SourceFile{FileName: "receive.ts", Statements: []hostapi.Node{fn, call}}
	host := NewHost().AddFile(sf)
	host.Bind(call, Symbol("f", fn))
	return host, sf
}

// CrossFileReference builds two files: "shape.ts" declares `interface
// Shape { area: number; }` and "consumer.ts" imports it and declares
// `class Wrapper { shape: Shape; }`. The resolver must bridge the import
// binding to Shape's InterfaceDecl (spec §4.4).
func CrossFileReference() (*Host, *hostapi.SourceFile, *hostapi.SourceFile) {
	shapeDecl := &hostapi.InterfaceDecl{
		At:   pos(1),
		Name: "Shape",
		Members: []hostapi.Member{
			&hostapi.PropertySignature{At: pos(1), Name: "area", Type: &hostapi.KeywordType{At: pos(1), Keyword: hostapi.KeywordNumber}},
		},
	}
	shapeFile := &hostapi.SourceFile{FileName: "shape.ts", Statements: []hostapi.Node{shapeDecl}}

	imp := &hostapi.ImportSpecifier{At: pos(1), LocalName: "Shape", ImportedName: "Shape", ModuleSpecifier: "./shape"}
	shapeRef := &hostapi.TypeReference{At: pos(2), Name: "Shape"}
	wrapper := &hostapi.ClassDecl{
		At:   pos(2),
		Name: "Wrapper",
		Members: []hostapi.Member{
			&hostapi.Property{At: pos(2), Name: "shape", Type: shapeRef},
		},
	}
	consumerFile := &hostapi.SourceFile{
		FileName:   "consumer.ts",
		Statements: []hostapi.Node{wrapper},
		Imports:    []*hostapi.ImportSpecifier{imp},
	}

	host := NewHost().AddFile(shapeFile).AddFile(consumerFile)
	importSym := Symbol("Shape", imp)
	host.Bind(shapeRef, importSym)
	host.BridgeImport(importSym, shapeDecl)
	return host, shapeFile, consumerFile
}

// ReExportedReference builds a three-file chain: "origin.ts" declares
// `interface Id { value: string; }`; "bridge.ts" re-exports it with
// `export { Id } from "origin.ts";`; "consumer.ts" imports Id from
// "bridge.ts" and references it. Module specifiers are the target file
// names, which is how the fixture host resolves modules. The checker cannot
// bridge straight through — the
// resolver must walk the module graph and follow the named re-export
// (spec §4.4, "transitive re-export walking").
func ReExportedReference() (*Host, *hostapi.SourceFile) {
	originDecl := &hostapi.InterfaceDecl{
		At:   pos(1),
		Name: "Id",
		Members: []hostapi.Member{
			&hostapi.PropertySignature{At: pos(1), Name: "value", Type: &hostapi.KeywordType{At: pos(1), Keyword: hostapi.KeywordString}},
		},
	}
	originFile := &hostapi.SourceFile{FileName: "origin.ts", Statements: []hostapi.Node{originDecl}}

	bridgeFile := &hostapi.SourceFile{
		FileName: "bridge.ts",
		NamedReExports: []*hostapi.NamedReExport{
			{At: pos(1), ModuleSpecifier: "origin.ts", Specifiers: []hostapi.ReExportSpecifier{{PropertyName: "Id", ExportedName: "Id"}}},
		},
	}

	imp := &hostapi.ImportSpecifier{At: pos(1), LocalName: "Id", ImportedName: "Id", ModuleSpecifier: "bridge.ts"}
	idRef := &hostapi.TypeReference{At: pos(2), Name: "Id"}
	consumer := &hostapi.ClassDecl{
		At:   pos(2),
		Name: "Holder",
		Members: []hostapi.Member{
			&hostapi.Property{At: pos(2), Name: "id", Type: idRef},
		},
	}
	consumerFile := &hostapi.SourceFile{
		FileName:   "consumer.ts",
		Statements: []hostapi.Node{consumer},
		Imports:    []*hostapi.ImportSpecifier{imp},
	}

	host := NewHost().AddFile(originFile).AddFile(bridgeFile).AddFile(consumerFile)
	host.Bind(idRef, Symbol("Id", imp))
	// Deliberately no BridgeImport entry: the checker cannot bridge this one,
	// forcing the resolver to walk bridge.ts's NamedReExports itself.
	return host, consumerFile
}

// ConditionalInfer builds:
//
//	type ElementOf<T> = T extends (infer U)[] ? U : never;
//
// in "elementof.ts", exercising the conditional frame and the
// extends/infer/condition ops.
func ConditionalInfer() (*Host, *hostapi.SourceFile) {
	tparam := &hostapi.TypeParameter{At: pos(1), Name: "T"}
	alias := &hostapi.TypeAliasDecl{
		At:             pos(1),
		Name:           "ElementOf",
		TypeParameters: []*hostapi.TypeParameter{tparam},
		Type: &hostapi.ConditionalType{
			At:    pos(1),
			Check: &hostapi.TypeReference{At: pos(1), Name: "T"},
			Extends: &hostapi.ArrayType{
				At:      pos(1),
				Element: &hostapi.InferType{At: pos(1), Name: "U"},
			},
			True:  &hostapi.TypeReference{At: pos(1), Name: "U"},
			False: &hostapi.KeywordType{At: pos(1), Keyword: hostapi.KeywordNever},
		},
	}
	sf := &hostapi.SourceFile{FileName: "elementof.ts", Statements: []hostapi.Node{alias}}
	return NewHost().AddFile(sf), sf
}

// KnownClassesClass builds a class referencing several well-known runtime
// classes and a branded numeric type, in "builtins.ts":
//
//	class Record {
//	  createdAt: Date;
//	  buffer: Uint8Array;
//	  tags: Set<string>;
//	  count: integer;
//	}
func KnownClassesClass() (*Host, *hostapi.SourceFile) {
	class := &hostapi.ClassDecl{
		At:   pos(1),
		Name: "Record",
		Members: []hostapi.Member{
			&hostapi.Property{At: pos(1), Name: "createdAt", Type: &hostapi.TypeReference{At: pos(1), Name: "Date"}},
			&hostapi.Property{At: pos(1), Name: "buffer", Type: &hostapi.TypeReference{At: pos(1), Name: "Uint8Array"}},
			&hostapi.Property{At: pos(1), Name: "tags", Type: &hostapi.TypeReference{
				At: pos(1), Name: "Set", TypeArguments: []hostapi.TypeNode{&hostapi.KeywordType{At: pos(1), Keyword: hostapi.KeywordString}},
			}},
			&hostapi.Property{At: pos(1), Name: "count", Type: &hostapi.TypeReference{At: pos(1), Name: "integer"}},
		},
	}
	sf := &hostapi.SourceFile{FileName: "builtins.ts", Statements: []hostapi.Node{class}}
	return NewHost().AddFile(sf), sf
}

// ClassMerging builds two `interface Mergeable` declarations in the same
// file. Nothing in this repository merges their member sets: each
// declaration is walked on its own, and the demo walks only the last one.
func ClassMerging() (*Host, *hostapi.SourceFile) {
	first := &hostapi.InterfaceDecl{
		At:   pos(1),
		Name: "Mergeable",
		Members: []hostapi.Member{
			&hostapi.PropertySignature{At: pos(1), Name: "a", Type: &hostapi.KeywordType{At: pos(1), Keyword: hostapi.KeywordString}},
		},
	}
	second := &hostapi.InterfaceDecl{
		At:   pos(2),
		Name: "Mergeable",
		Members: []hostapi.Member{
			&hostapi.PropertySignature{At: pos(2), Name: "b", Type: &hostapi.KeywordType{At: pos(2), Keyword: hostapi.KeywordNumber}},
		},
	}
	sf := &hostapi.SourceFile{FileName: "merge.ts", Statements: []hostapi.Node{first, second}}
	return NewHost().AddFile(sf), sf
}
