package ast

type TopLevelItem interface {
	Node
	isTopLevelItem()
}

func (*Contract) isTopLevelItem()   {}
func (*Function) isTopLevelItem()   {}
func (*Constant) isTopLevelItem()   {}
func (*StructDecl) isTopLevelItem() {}
func (*BadItem) isTopLevelItem()    {}

type ContractItem interface {
	Node
	isContractItem()
}

func (*Field) isContractItem()    {}
func (*Constant) isContractItem() {}
func (*Function) isContractItem() {}
func (*BadItem) isContractItem()  {}
