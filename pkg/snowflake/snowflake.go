package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// GenString 笔记等对外暴露的不透明 ID
func GenString() string {
	return node.Generate().String()
}
