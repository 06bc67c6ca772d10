package service

import (
	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	commentDto "github.com/torcriss/CocoReddit-sub000/internal/modules/comment/dto"
	"github.com/google/uuid"
)

// BuildTree turns the flat comment list for a post into an ordered forest of
// root comments with nested replies. It is pure and idempotent: the same
// input always yields the same tree, and input order is preserved among
// siblings.
//
// A comment whose parent id is not present in the input is promoted to root
// rather than dropped; an orphaned reply is not an error.
func BuildTree(flat []entity.Comment) []*commentDto.CommentNode {
	nodes := make(map[uuid.UUID]*commentDto.CommentNode, len(flat))
	for i := range flat {
		nodes[flat[i].ID] = &commentDto.CommentNode{
			Comment: flat[i],
			Replies: []*commentDto.CommentNode{},
		}
	}

	roots := []*commentDto.CommentNode{}
	for i := range flat {
		node := nodes[flat[i].ID]
		if flat[i].ParentID != nil {
			if parent, exists := nodes[*flat[i].ParentID]; exists {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}
