// Package lingo decompiles compiled Lingo bytecode (Lscr chunks) into a
// pretty-printed AST.
//
// The pipeline is four stages: a bytecode reader turns a handler's raw
// instruction stream into canonical opcode/operand pairs and a byte-offset
// position map; a loop tagger walks that stream once to classify repeat
// constructs before lifting begins; an AST lifter replays the instructions
// against an expression stack to build statement/expression trees; and a
// writer pretty-prints the tree back to Lingo source text.
package lingo
