package ast

type NodeType int

const (
	// Special / error
	ILLEGAL NodeType = iota
	BAD_ITEM
	BAD_EXPR

	// Top level
	FILE
	IMPORT
	CONTRACT
	STRUCT_DECL
	CONSTANT
	FIELD
	TYPE

	// Functions
	FUNCTION
	PARAM

	// Statements
	LET_STMT
	ASSIGN_STMT
	AUGMENTED_ASSIGN_STMT
	RETURN_STMT
	EXPR_STMT
	IF_STMT
	WHILE_STMT
	REPEAT_STMT
	UNTIL_STMT
	TRY_STMT
	FOREACH_STMT
	BLOCK_STMT

	// Expressions
	NUMBER_EXPR
	BOOL_EXPR
	STRING_EXPR
	NULL_EXPR
	IDENT_EXPR
	BINARY_EXPR
	UNARY_EXPR
	CONDITIONAL_EXPR
	CALL_EXPR
	METHOD_CALL_EXPR
	FIELD_ACCESS_EXPR
	STRUCT_INSTANCE_EXPR
	INIT_OF_EXPR
)
