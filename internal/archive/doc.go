// Package archive loads the three on-disk inputs of a jitter validation run
// into fixed-schema records:
//
//   - TransferMatrix: the D_tt entry of a NumPy .npz archive, a 2×12 matrix
//     mapping stacked M1/M2 rigid-body motions to tip/tilt.
//   - ReferenceJitter: the Data.Pupil entry of a pickled simulation record,
//     a 2×T array in radians (NumPy ndarray or nested lists).
//   - RigidBodyMotion: the OSSM1Lcl and MCM2Lcl6D time series of a pickled
//     telemetry record, each a list of (time, 6-vector) samples.
//
// Every loader validates shapes at load time and fails with an error
// wrapping ErrDecode, ErrMissingField or ErrShape. Missing files surface as
// fs.ErrNotExist.
package archive
