package prompt

const categoryDefinitions = `### Category Definitions:

- **BC breaking**: All commits that are BC-breaking. These are the most important commits. If any pre-sorted commit is actually BC-breaking, move it to this section. Each commit should contain a paragraph explaining the rationale behind the change as well as an example for how to update user code BC-Guidelines.
- **Deprecations**: All commits introducing deprecation. Each commit should include a small example explaining what should be done to update user code.
- **New_features**: All commits introducing a new feature (new functions, new submodule, new supported platform, etc.).
- **Improvements**: All commits providing improvements to existing features should be here (new backend for a function, new argument, better numerical stability).
- **Bug Fixes**: All commits that fix bugs and behaviors that do not match the documentation.
- **Performance**: All commits that are added mainly for performance (we separate this from improvements above to make it easier for users to look for it).
- **Documentation**: All commits that add/update documentation.
- **Developers**: All commits that are not end-user facing but still impact people that compile from source, develop into PyTorch, extend PyTorch, etc.`

const exampleResponse = `### Example Output:

## Improvements:
- [inductor][AOTI] Adds broadcast support for key-value batch dimensions in FlexAttention to enhance flexibility and performance (#135505).
- [inductor][AOTI] Flip custom_op_default_layout_constraint in Inductor to optimize tensor layout for improved computation efficiency (#135239).

## Bug Fixes:
- [inductor][AOTI] Fixes an edge case in remove_split_with_size_one to enhance stability (#135962).

## New_features:
- [inductor][AOTI] Introduces a new backend for faster computation in Triton kernels (#135530).

## Deprecations:
- [inductor][AOTI] Deprecates the old stride order configuration in favor of the new method (#136367).

## BC breaking:
- [inductor][AOTI] Changes the layout constraint which requires users to update their code as follows: ...

## Performance:
- [inductor][AOTI] Optimizes the kernel to reduce computation time by 20% (#135239).

## Documentation:
- [inductor][AOTI] Updates the documentation to include new layout constraints (#135581).

## Developers:
- [inductor][AOTI] Refactors the cache management system to improve extensibility (#138239).`

const instructionsTemplate = `You are a release notes generator for the PyTorch repository. Your task is to categorize a list of Pull Requests (PRs) into the following categories based on the definitions provided below:

{{.CategoryDefinitions}}

Each PR should be summarized in one sentence and placed under the appropriate category. Use the format '- [Tags] one sentence summary of the PR (#PR_Number)'. Ensure that the output is in valid Markdown format and that the PR number is placed at the end of each entry.

### Example Output:
{{.ExampleResponse}}

Here is the list of PRs:
`
