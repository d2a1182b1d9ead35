package merge

import (
	corev1 "k8s.io/api/core/v1"
)

// EnvVars merges environment variables keyed by name.
func EnvVars(specific, general []corev1.EnvVar) []corev1.EnvVar {
	return KeyedList(specific, general, func(e corev1.EnvVar) string { return e.Name })
}

// Volumes merges volumes keyed by name.
func Volumes(specific, general []corev1.Volume) []corev1.Volume {
	return KeyedList(specific, general, func(v corev1.Volume) string { return v.Name })
}

// VolumeMounts merges volume mounts keyed by the name of the mounted volume.
func VolumeMounts(specific, general []corev1.VolumeMount) []corev1.VolumeMount {
	return KeyedList(specific, general, func(m corev1.VolumeMount) string { return m.Name })
}

// ResourceRequirements merges requests and limits independently, key by key.
// Resource claims are keyed by name.
func ResourceRequirements(specific, general corev1.ResourceRequirements) corev1.ResourceRequirements {
	return corev1.ResourceRequirements{
		Requests: Map(specific.Requests, general.Requests),
		Limits:   Map(specific.Limits, general.Limits),
		Claims:   KeyedList(specific.Claims, general.Claims, func(c corev1.ResourceClaim) string { return c.Name }),
	}
}
