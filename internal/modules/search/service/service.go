package service

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/meilisearch/meilisearch-go"
)

const postsIndex = "posts"

// PostDocument is the search projection of a post.
type PostDocument struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	AuthorUsername string `json:"authorUsername"`
	SubredditID    string `json:"subredditId"`
	CreatedAt      int64  `json:"createdAt"`
}

type SearchService interface {
	IndexPost(post *entity.Post) error
	DeletePost(postID string) error
	SearchPosts(query string, subredditID string, limit int64) ([]PostDocument, error)
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

func NewMeiliSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{client: client}
	s.initIndex()
	return s
}

func (s *meiliSearchService) initIndex() {
	filterable := []string{"subredditId"}
	filterableInterface := make([]any, len(filterable))
	for i, v := range filterable {
		filterableInterface[i] = v
	}
	_, err := s.client.Index(postsIndex).UpdateFilterableAttributes(&filterableInterface)
	if err != nil {
		log.Printf("Failed to update posts filterable attributes: %v", err)
	}

	sortable := []string{"createdAt"}
	_, err = s.client.Index(postsIndex).UpdateSortableAttributes(&sortable)
	if err != nil {
		log.Printf("Failed to update posts sortable attributes: %v", err)
	}

	searchable := []string{"title", "content", "authorUsername"}
	_, err = s.client.Index(postsIndex).UpdateSearchableAttributes(&searchable)
	if err != nil {
		log.Printf("Failed to update posts searchable attributes: %v", err)
	}
}

func (s *meiliSearchService) IndexPost(post *entity.Post) error {
	doc := PostDocument{
		ID:             post.ID.String(),
		Title:          post.Title,
		AuthorUsername: post.AuthorUsername,
		CreatedAt:      post.CreatedAt.Unix(),
	}
	if post.Content != nil {
		doc.Content = *post.Content
	}
	if post.SubredditID != nil {
		doc.SubredditID = post.SubredditID.String()
	}

	_, err := s.client.Index(postsIndex).AddDocuments([]PostDocument{doc}, strPtr("id"))
	return err
}

func (s *meiliSearchService) DeletePost(postID string) error {
	_, err := s.client.Index(postsIndex).DeleteDocument(postID)
	return err
}

func (s *meiliSearchService) SearchPosts(query string, subredditID string, limit int64) ([]PostDocument, error) {
	if limit <= 0 {
		limit = 20
	}

	req := &meilisearch.SearchRequest{Limit: limit}
	if subredditID != "" {
		req.Filter = fmt.Sprintf("subredditId = %q", subredditID)
	}

	resp, err := s.client.Index(postsIndex).Search(query, req)
	if err != nil {
		return nil, err
	}

	// Hits decode straight into the document shape.
	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, err
	}

	docs := []PostDocument{}
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func strPtr(s string) *string {
	return &s
}
