// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"io"
	"time"
)

// Product is a single inventory item owned by a user.
type Product struct {
	// ID is the server-generated unique identifier of the product (UUID).
	ID string `json:"_id"`

	// UserID is the owner of the product. Only the owner may read,
	// update or delete it.
	UserID string `json:"user"`

	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Category    string  `json:"category"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`

	// Image describes the uploaded product picture. Zero value means
	// no picture was uploaded.
	Image ProductImage `json:"image"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Product model.
func (p Product) TableName() string {
	return "products"
}

// ProductImage holds metadata of a product picture stored in object storage.
type ProductImage struct {
	FileName string `json:"fileName,omitempty"`
	FilePath string `json:"filePath,omitempty"`
	FileType string `json:"fileType,omitempty"`
	FileSize string `json:"fileSize,omitempty"`
}

// IsEmpty reports whether no image is attached.
func (i ProductImage) IsEmpty() bool {
	return i.FilePath == ""
}

// ProductRequest carries the user-editable product fields received from
// the create and update endpoints.
type ProductRequest struct {
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Category    string  `json:"category"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// ImageUpload is an image file received together with a product request.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}
