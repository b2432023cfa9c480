package schema

import (
	"fmt"
	"strings"
)

// DatasetReference formats a reference to a registered dataset by name,
// e.g. "azureml:train_ds".
func DatasetReference(name string) string {
	return ReferenceScheme + ":" + name
}

// VersionedAssetReference formats a reference to a specific asset version,
// e.g. "azureml:tx_training_mltable:1".
func VersionedAssetReference(name, version string) string {
	return fmt.Sprintf("%s:%s:%s", ReferenceScheme, name, version)
}

// DatastorePathReference formats a reference to a path inside a named
// datastore. The path keeps exactly one trailing slash regardless of input.
func DatastorePathReference(datastore, path string) string {
	return fmt.Sprintf("%s://datastores/%s/paths/%s/", ReferenceScheme, datastore, strings.TrimRight(path, "/"))
}

// StudioMonitoringURL points at the monitoring page of the workspace in the
// hosted studio UI.
func StudioMonitoringURL(subscriptionID, resourceGroup, workspace string) string {
	return fmt.Sprintf(
		"https://ml.azure.com/monitoring?wsid=/subscriptions/%s/resourceGroups/%s/providers/Microsoft.MachineLearningServices/workspaces/%s",
		subscriptionID, resourceGroup, workspace,
	)
}

// WorkspaceResourceID builds the management-plane resource id of a workspace.
func WorkspaceResourceID(subscriptionID, resourceGroup, workspace string) string {
	return fmt.Sprintf(
		"/subscriptions/%s/resourceGroups/%s/providers/Microsoft.MachineLearningServices/workspaces/%s",
		subscriptionID, resourceGroup, workspace,
	)
}
