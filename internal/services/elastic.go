package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"risearc_back_end/internal/database"
	"risearc_back_end/internal/models"
)

const productIndex = "products"

//
// --- INDEXATION DANS ELASTICSEARCH ---
//

// IndexProduct indexe un produit dans Elasticsearch.
// Sans client configuré on ne fait rien : la recherche SQL prend le relais.
func IndexProduct(p models.Product) {
	if database.Elastic == nil {
		return
	}

	doc := map[string]interface{}{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"category_id": p.CategoryID,
		"price":       p.Price,
		"is_active":   p.IsActive,
	}
	data, _ := json.Marshal(doc)

	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: strconv.FormatUint(uint64(p.ID), 10),
		Body:       bytes.NewReader(data),
		Refresh:    "true", // rend la donnée immédiatement visible
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", p.Name, res.String())
	} else {
		log.Printf("✅ Produit indexé dans Elasticsearch: %s", p.Name)
	}
}

// RemoveProductFromIndex retire un produit supprimé de l'index.
func RemoveProductFromIndex(productID uint) {
	if database.Elastic == nil {
		return
	}

	req := esapi.DeleteRequest{
		Index:      productIndex,
		DocumentID: strconv.FormatUint(uint64(productID), 10),
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erreur suppression Elastic:", err)
		return
	}
	res.Body.Close()
}

//
// --- RECHERCHE DANS ELASTICSEARCH ---
//

// SearchProducts cherche par nom/description et renvoie les IDs trouvés.
// Le handler recharge ensuite les lignes SQL : Postgres reste la source
// de vérité, l'index ne sert qu'au matching.
func SearchProducts(query string) ([]uint, error) {
	if database.Elastic == nil {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"name", "description"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"is_active": true},
				},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{productIndex},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.New("index non trouvé ou vide")
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID uint `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %v", err)
	}

	ids := make([]uint, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, nil
}
