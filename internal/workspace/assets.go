package workspace

import (
	"context"
	"net/http"
	"time"

	"github.com/mlopshq/driftmon/schema"
)

// defaultAssetVersion is used when the caller does not pin a version.
const defaultAssetVersion = "1"

// armResource is the ARM envelope around a workspace child resource.
type armResource[T any] struct {
	ID         string         `json:"id,omitempty"`
	Name       string         `json:"name,omitempty"`
	Properties T              `json:"properties"`
	SystemData *armSystemData `json:"systemData,omitempty"`
}

// armList is the ARM envelope around a collection response.
type armList[T any] struct {
	Value []armResource[T] `json:"value"`
}

// armSystemData carries the resource audit fields the CLI surfaces.
type armSystemData struct {
	CreatedAt time.Time `json:"createdAt"`
}

// dataVersionProperties is the body of a data-asset version resource.
type dataVersionProperties struct {
	DataType    string `json:"dataType"`
	DataURI     string `json:"dataUri"`
	Description string `json:"description,omitempty"`
}

// modelVersionProperties is the body of a model version resource.
type modelVersionProperties struct {
	ModelURI    string `json:"modelUri"`
	Description string `json:"description,omitempty"`
}

// UpsertData registers a data-asset version with the workspace. An empty
// asset version defaults to "1".
func (c *Client) UpsertData(ctx context.Context, asset *schema.DataAsset) (*schema.DataAsset, error) {
	version := asset.Version
	if version == "" {
		version = defaultAssetVersion
	}

	body := armResource[dataVersionProperties]{
		Properties: dataVersionProperties{
			DataType:    string(asset.Type),
			DataURI:     asset.Path,
			Description: asset.Description,
		},
	}
	var resp armResource[dataVersionProperties]
	if err := c.doJSON(ctx, http.MethodPut, []string{"data", asset.Name, "versions", version}, body, &resp); err != nil {
		return nil, err
	}

	return &schema.DataAsset{
		Name:        asset.Name,
		Version:     version,
		Path:        resp.Properties.DataURI,
		Type:        schema.AssetType(resp.Properties.DataType),
		Description: resp.Properties.Description,
	}, nil
}

// UpsertModel registers a model version with the workspace.
func (c *Client) UpsertModel(ctx context.Context, model *schema.ModelAsset) (*schema.ModelAsset, error) {
	version := model.Version
	if version == "" {
		version = defaultAssetVersion
	}

	body := armResource[modelVersionProperties]{
		Properties: modelVersionProperties{
			ModelURI:    model.Path,
			Description: model.Description,
		},
	}
	var resp armResource[modelVersionProperties]
	if err := c.doJSON(ctx, http.MethodPut, []string{"models", model.Name, "versions", version}, body, &resp); err != nil {
		return nil, err
	}

	return &schema.ModelAsset{
		Name:        model.Name,
		Version:     version,
		Path:        resp.Properties.ModelURI,
		Description: resp.Properties.Description,
	}, nil
}

// UpsertSignal registers a flat drift-signal descriptor under the
// monitorSignals endpoint.
func (c *Client) UpsertSignal(ctx context.Context, signal *schema.DriftSignal) (*schema.DriftSignal, error) {
	body := armResource[*schema.DriftSignal]{Properties: signal}
	var resp armResource[schema.DriftSignal]
	if err := c.doJSON(ctx, http.MethodPut, []string{"monitorSignals", signal.Name}, body, &resp); err != nil {
		return nil, err
	}
	created := resp.Properties
	if created.Name == "" {
		created.Name = signal.Name
	}
	return &created, nil
}
