package http

import (
	"net/http"

	"github.com/aretw0/parley/internal/presentation/graph"
	"github.com/aretw0/parley/pkg/codec"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/session"
	"github.com/go-chi/chi/v5"
)

// ListTrees handles GET /trees.
func (s *Server) ListTrees(w http.ResponseWriter, r *http.Request) {
	loader := s.Sessions.Trees()
	if loader == nil {
		s.fail(w, "ListTrees", session.ErrNoTrees)
		return
	}
	ids, err := loader.ListTrees(r.Context())
	if err != nil {
		s.fail(w, "ListTrees", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetTree handles GET /trees/{treeID} with the serialized tree.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := s.tree(r)
	if err != nil {
		s.fail(w, "GetTree", err)
		return
	}
	data, err := codec.Serialize(tree)
	if err != nil {
		s.fail(w, "GetTree", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// GetTreeGraph handles GET /trees/{treeID}/graph with a Mermaid flowchart.
func (s *Server) GetTreeGraph(w http.ResponseWriter, r *http.Request) {
	tree, err := s.tree(r)
	if err != nil {
		s.fail(w, "GetTreeGraph", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(tree, nil)))
}

func (s *Server) tree(r *http.Request) (*domain.Tree, error) {
	loader := s.Sessions.Trees()
	if loader == nil {
		return nil, session.ErrNoTrees
	}
	return loader.GetTree(r.Context(), chi.URLParam(r, "treeID"))
}
